package input

import (
	"regexp"
	"strings"
)

// caretQuoted matches an argument written as ^"...^", the form browsers
// produce when copying a request for CMD. Every special character inside is
// a ^x pair, and a quote is written ^\^" (or \^" by hand).
const caretQuoted = `\^"((?:\^\\\^\\|\^\\\^"|\\\^"|\^[^"]|[^^])*)\^"`

var (
	reURL          = regexp.MustCompile(`\bcurl\s+(?:-\S*\s+)*(\^?"|')?([^"'\s^-](?:[^"'\s^]|\^[^"\s])*)`)
	reFlagArgument = regexp.MustCompile(`(?:^|\s)-[XHd]\s+(?:` + caretQuoted + `|'[^']*'|"(?:\^\^?"|\\"|[^"])*"|[^\s"']+)`)
	reMethodFlag   = regexp.MustCompile(`(?:^|\s)-X\s+(?:\^?"|')?(\w+)`)
	reHeaderSep    = regexp.MustCompile(`:\s*`)
	reCaretEscape  = regexp.MustCompile(`\^(.)`)
	reArgvEscape   = regexp.MustCompile(`\\(["\\])`)
)

type quoting struct {
	header   *regexp.Regexp
	body     *regexp.Regexp
	unescape func(string) string
	// caretGroup is the capture group that holds a caret-quoted argument,
	// zero when the dialect has none.
	caretGroup int
}

var quotings = map[Dialect]quoting{
	Bash: {
		header: regexp.MustCompile(`(?:^|\s)-H\s+'([^']+)'`),
		body:   regexp.MustCompile(`(?:^|\s)-d\s+'([^']+)'`),
		unescape: func(s string) string {
			return strings.ReplaceAll(s, `\"`, `"`)
		},
	},
	WindowsCmd: {
		header: regexp.MustCompile(`(?:^|\s)-H\s+(?:` + caretQuoted + `|"((?:\^\^?"|[^"])+)"|'([^']+)')`),
		body:   regexp.MustCompile(`(?:^|\s)-d\s+(?:` + caretQuoted + `|"((?:\^\^?"|[^"])+)"|'([^']+)')`),
		unescape: func(s string) string {
			s = strings.ReplaceAll(s, `^^"`, `"`)
			return strings.ReplaceAll(s, `^"`, `"`)
		},
		caretGroup: 1,
	},
}

// ParseCommand turns a curl command line into a Request.
//
// Only the URL, -X, -H and -d are understood; anything else on the line is
// skipped. A missing URL is the only failure: an unknown method becomes
// GET, and absent headers or body leave the zero value in place.
func ParseCommand(raw string) (*Request, error) {
	dialect := DetectDialect(raw)
	line := normalize(raw)
	q := quotings[dialect]

	u, ok := extractURL(line)
	if !ok {
		return nil, newParseError(MissingURL, "unable to parse URL from curl command")
	}

	return &Request{
		Method: extractMethod(line),
		URL:    u,
		Header: extractHeader(line, q),
		Body:   extractBody(line, q),
	}, nil
}

func extractURL(line string) (string, bool) {
	// Flag arguments are blanked first so that "curl -X POST https://..."
	// does not report POST as the URL.
	masked := reFlagArgument.ReplaceAllString(line, " ")
	m := reURL.FindStringSubmatch(masked)
	if m == nil {
		return "", false
	}
	if m[1] == `^"` {
		return decodeCaretQuoted(m[2]), true
	}
	return m[2], true
}

func extractMethod(line string) Method {
	m := reMethodFlag.FindStringSubmatch(line)
	if m == nil {
		return MethodGet
	}
	method, _ := ParseMethod(m[1])
	return method
}

func extractHeader(line string, q quoting) Header {
	var header Header
	for _, m := range q.header.FindAllStringSubmatch(line, -1) {
		arg, group := argument(m)
		caret := group != 0 && group == q.caretGroup
		if caret {
			arg = decodeCaretQuoted(arg)
		}
		name, value, ok := splitHeader(arg)
		if !ok {
			continue
		}
		if !caret {
			value = q.unescape(value)
		}
		header.Set(name, stripQuotes(value))
	}
	return header
}

// extractBody keeps quoted bodies as written. Only the caret quoting, which
// escapes every character, is decoded.
func extractBody(line string, q quoting) string {
	m := q.body.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	arg, group := argument(m)
	if group != 0 && group == q.caretGroup {
		return decodeCaretQuoted(arg)
	}
	return arg
}

// splitHeader splits "Name: value" on every colon. The pieces after the
// name are joined back with ": ", so "a:b" comes out as "a: b".
func splitHeader(s string) (string, string, bool) {
	parts := reHeaderSep.Split(s, -1)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return "", "", false
	}
	return name, joinHeaderValue(parts[1:]), true
}

func joinHeaderValue(parts []string) string {
	return strings.TrimSpace(strings.Join(parts, ": "))
}

// decodeCaretQuoted drops the caret from every ^x pair, then undoes the
// backslash escapes of \" and \\.
func decodeCaretQuoted(s string) string {
	s = reCaretEscape.ReplaceAllString(s, "$1")
	return reArgvEscape.ReplaceAllString(s, "$1")
}

func stripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// argument returns the first non-empty capture group of m and its index.
func argument(m []string) (string, int) {
	for i, g := range m[1:] {
		if g != "" {
			return g, i + 1
		}
	}
	return "", 0
}
