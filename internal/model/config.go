package model

// OptionName is the well-known key the settings record is stored under.
const OptionName = "upstream_update_settings"

// Field names of the settings record.
const (
	KeyUpdateType  = "update_type"
	KeyRepoURL     = "repo_url"
	KeyAccessToken = "access_token"
)

// Keys lists the settings fields in form order.
var Keys = []string{KeyUpdateType, KeyRepoURL, KeyAccessToken}

// Record is the persisted settings mapping. A key that is present, even with
// an empty value, is distinct from a key that is absent.
type Record map[string]string

// Clone returns a shallow copy of r. A nil record clones to an empty one.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}

	return out
}

// Merge returns a copy of r with every key of fragment applied on top.
// Keys absent from fragment keep their stored value.
func (r Record) Merge(fragment Record) Record {
	out := r.Clone()
	for k, v := range fragment {
		out[k] = v
	}

	return out
}

// UpdateType is the kind of artifact the update checker treats the host as.
type UpdateType string

const (
	UpdateTypePlugin UpdateType = "plugin"
	UpdateTypeTheme  UpdateType = "theme"
	UpdateTypeBoth   UpdateType = "both"
)

// UpdateTypes lists the recognized values in display order.
var UpdateTypes = []UpdateType{UpdateTypePlugin, UpdateTypeTheme, UpdateTypeBoth}

// ParseUpdateType maps a stored token to an UpdateType. Anything that is not
// one of the recognized tokens, including the empty string, falls back to
// UpdateTypePlugin and reports ok=false.
func ParseUpdateType(s string) (UpdateType, bool) {
	switch UpdateType(s) {
	case UpdateTypePlugin, UpdateTypeTheme, UpdateTypeBoth:
		return UpdateType(s), true
	default:
		return UpdateTypePlugin, false
	}
}

// Label returns the human-readable name shown in forms.
func (t UpdateType) Label() string {
	switch t {
	case UpdateTypeTheme:
		return "Theme"
	case UpdateTypeBoth:
		return "Both (Auto-detect)"
	default:
		return "Plugin"
	}
}

// Config is the read-time view of a settings record with defaults applied.
type Config struct {
	// UpdateType is the recognized update target, plugin when unset or unknown
	UpdateType UpdateType `json:"update_type"`

	// RawUpdateType is the value exactly as stored, empty when absent
	RawUpdateType string `json:"-"`

	// RepoURL is the repository the checker polls; empty disables the checker
	RepoURL string `json:"repo_url"`

	// AccessToken authenticates against private repositories
	AccessToken string `json:"-"`
}

// ConfigFromRecord builds a Config from a stored record. A nil record yields
// the all-defaults configuration.
func ConfigFromRecord(r Record) Config {
	raw := r[KeyUpdateType]
	ut, _ := ParseUpdateType(raw)

	return Config{
		UpdateType:    ut,
		RawUpdateType: raw,
		RepoURL:       r[KeyRepoURL],
		AccessToken:   r[KeyAccessToken],
	}
}

// Complete reports whether a repository URL is configured.
func (c Config) Complete() bool {
	return c.RepoURL != ""
}

// Authenticated reports whether the checker should be given the access token.
func (c Config) Authenticated() bool {
	return c.AccessToken != ""
}
