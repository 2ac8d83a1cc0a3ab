package security

import (
	"fmt"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"
)

// TokenKind describes a recognized credential format.
type TokenKind struct {
	RuleID      string
	Description string
}

// TokenClassifier recognizes well-known credential formats using the default
// gitleaks rule set. The result is informational only: an unrecognized token
// is still a valid token.
type TokenClassifier struct {
	once     sync.Once
	detector *detect.Detector
	err      error
}

// NewTokenClassifier creates a classifier. The rule set is loaded on first use.
func NewTokenClassifier() *TokenClassifier {
	return &TokenClassifier{}
}

func (c *TokenClassifier) load() (*detect.Detector, error) {
	c.once.Do(func() {
		d, err := detect.NewDetectorDefaultConfig()
		if err != nil {
			c.err = fmt.Errorf("failed to load gitleaks config: %w", err)

			return
		}

		c.detector = d
	})

	return c.detector, c.err
}

// Classify returns the kind of token, or false when no rule matches.
func (c *TokenClassifier) Classify(token string) (TokenKind, bool, error) {
	if token == "" {
		return TokenKind{}, false, nil
	}

	d, err := c.load()
	if err != nil {
		return TokenKind{}, false, err
	}

	// Rules keyed on an assignment need some context around the value.
	findings := d.DetectString("token = " + token)
	for _, f := range findings {
		if f.Secret != token {
			continue
		}

		return TokenKind{RuleID: f.RuleID, Description: f.Description}, true, nil
	}

	return TokenKind{}, false, nil
}

// Label returns the rule id of a recognized token, or "" otherwise.
// Errors are treated as unrecognized.
func (c *TokenClassifier) Label(token string) string {
	kind, ok, err := c.Classify(token)
	if err != nil || !ok {
		return ""
	}

	return kind.RuleID
}
