package sanitize

import (
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var percentOctet = regexp.MustCompile(`%[a-fA-F0-9]{2}`)

// Text cleans a single-line plain text value: invalid UTF-8 becomes "", tags
// are stripped (script and style bodies included), a remaining "<" is
// escaped, percent-encoded octets are removed and whitespace is collapsed.
func Text(s string) string {
	if !utf8.ValidString(s) {
		return ""
	}

	if strings.Contains(s, "<") {
		s = stripTags(s)
	}

	s = removeOctets(s)

	return strings.Join(strings.Fields(s), " ")
}

// stripTags keeps only the text of s. Anything the tokenizer still reports
// as text but starts with "<" (a lone less-than sign) is escaped so the
// output can never open a tag.
func stripTags(s string) string {
	var (
		b    strings.Builder
		skip int
		z    = html.NewTokenizer(strings.NewReader(s))
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return ""
			}

			return strings.ReplaceAll(b.String(), "<", "&lt;")
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Raw())
			}
		case html.StartTagToken:
			if isRawTextTag(z) {
				skip++
			}
		case html.EndTagToken:
			if isRawTextTag(z) && skip > 0 {
				skip--
			}
		case html.SelfClosingTagToken, html.CommentToken, html.DoctypeToken:
		}
	}
}

func isRawTextTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()

	switch string(name) {
	case "script", "style":
		return true
	}

	return false
}

// removeOctets drops %XX sequences until none are left, so that "%%4141"
// does not reassemble into a new octet.
func removeOctets(s string) string {
	for percentOctet.MatchString(s) {
		s = percentOctet.ReplaceAllString(s, "")
	}

	return s
}
