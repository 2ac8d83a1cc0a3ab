package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "https repo", input: "https://github.com/acme/widget", want: "https://github.com/acme/widget"},
		{name: "trims", input: "  https://github.com/acme/widget  ", want: "https://github.com/acme/widget"},
		{name: "keeps query and fragment", input: "https://example.com/a?b=c#d", want: "https://example.com/a?b=c#d"},
		{name: "encodes inner spaces", input: "https://example.com/a b", want: "https://example.com/a%20b"},
		{name: "drops illegal chars", input: "https://github.com/acme/<widget>\"", want: "https://github.com/acme/widget"},
		{name: "adds scheme to bare host", input: "github.com/acme/widget", want: "http://github.com/acme/widget"},
		{name: "keeps relative path", input: "/acme/widget", want: "/acme/widget"},
		{name: "repairs semicolon slashes", input: "https;//github.com/acme", want: "https://github.com/acme"},
		{name: "removes encoded newlines", input: "https://example.com/%0d%0aSet-Cookie", want: "https://example.com/Set-Cookie"},
		{name: "removes nested encoded newlines", input: "https://example.com/%0%0dd", want: "https://example.com/"},
		{name: "mailto keeps encoded newline", input: "mailto:a@b.c?body=%0A", want: "mailto:a@b.c?body=%0A"},
		{name: "rejects javascript", input: "javascript:alert(1)", want: ""},
		{name: "rejects mixed case javascript", input: "JaVaScRiPt:alert(1)", want: ""},
		{name: "rejects entity encoded scheme", input: "&#106;avascript:alert(1)", want: ""},
		{name: "neutralizes entity separator", input: "javascript&#58;alert(1)", want: "http://javascript&#58;alert(1)"},
		{name: "rejects data", input: "data:text/html;base64,AAAA", want: ""},
		{name: "rejects scp syntax", input: "git@github.com:acme/widget.git", want: ""},
		{name: "keeps colon inside path", input: "https://example.com/a:b", want: "https://example.com/a:b"},
		{name: "empty", input: "", want: ""},
		{name: "only illegal", input: "<>\"", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URL(tt.input))
		})
	}
}
