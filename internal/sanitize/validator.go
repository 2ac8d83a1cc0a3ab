package sanitize

import (
	"log/slog"

	"github.com/inovacc/upstream/internal/model"
)

// fieldSanitizers maps each settings field to its normalization.
var fieldSanitizers = map[string]func(string) string{
	model.KeyUpdateType:  Text,
	model.KeyRepoURL:     URL,
	model.KeyAccessToken: Text,
}

// Validator turns a raw settings submission into a record fragment that is
// safe to persist.
type Validator struct {
	logger *slog.Logger
}

// NewValidator creates a Validator. A nil logger uses slog.Default().
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Validator{logger: logger}
}

// Sanitize returns a new record holding only the known keys present in in,
// each normalized. Absent keys stay absent: defaults are a read-time concern.
// update_type is cleaned as text but not checked against the enumeration.
func (v *Validator) Sanitize(in model.Record) model.Record {
	out := make(model.Record, len(fieldSanitizers))

	for key, raw := range in {
		fn, ok := fieldSanitizers[key]
		if !ok {
			v.logger.Debug("dropping unknown settings field", slog.String("field", key))

			continue
		}

		out[key] = fn(raw)
	}

	return out
}
