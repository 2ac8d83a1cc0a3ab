package sanitize

import (
	"html"
	"regexp"
	"slices"
	"strings"
)

// AllowedProtocols are the URL schemes URL keeps. Any other scheme empties
// the value.
var AllowedProtocols = []string{
	"http", "https", "ftp", "ftps", "mailto", "news", "irc", "irc6", "ircs",
	"gopher", "nntp", "feed", "telnet", "mms", "rtsp", "sms", "svn", "tel",
	"fax", "xmpp", "webcal", "urn",
}

var (
	disallowedURLChars = regexp.MustCompile(`[^a-zA-Z0-9\-~+_.?#=!&;,/:%@$|*'()\[\]\x{80}-\x{10FFFF}]`)
	schemeSeparator    = regexp.MustCompile(`(?i):|&#0*58;?|&#x0*3a;?|&colon;`)
	encodedNewline     = []string{"%0d", "%0a", "%0D", "%0A"}
)

// URL cleans a URL for storage. Characters that are not legal in a URL are
// dropped, encoded CR/LF are removed, a bare host gets an http:// prefix, and
// a value whose scheme is not in AllowedProtocols becomes "".
func URL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}

	u = strings.ToValidUTF8(u, "")
	u = strings.ReplaceAll(u, " ", "%20")
	u = disallowedURLChars.ReplaceAllString(u, "")

	if !strings.HasPrefix(strings.ToLower(u), "mailto:") {
		u = deepReplace(u, encodedNewline...)
	}

	u = strings.ReplaceAll(u, ";//", "://")

	// removals can expose non-ASCII whitespace at either end
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}

	if !strings.Contains(u, ":") && !strings.ContainsAny(u[:1], "/#?") {
		u = "http://" + u
	}

	if u[0] != '/' && hasBadProtocol(u) {
		return ""
	}

	return u
}

// deepReplace removes every needle until none remains, so nested sequences
// like "%0%0ada" cannot survive a single pass.
func deepReplace(s string, needles ...string) string {
	for {
		found := false

		for _, n := range needles {
			if strings.Contains(s, n) {
				found = true
				s = strings.ReplaceAll(s, n, "")
			}
		}

		if !found {
			return s
		}
	}
}

func hasBadProtocol(u string) bool {
	loc := schemeSeparator.FindStringIndex(u)
	if loc == nil {
		return false
	}

	scheme := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}

		return r
	}, html.UnescapeString(u[:loc[0]]))
	scheme = strings.ToLower(scheme)

	// "path/with:colon" or "?q=a:b" is not a scheme
	if strings.ContainsAny(scheme, "/?#") {
		return false
	}

	return !slices.Contains(AllowedProtocols, scheme)
}
