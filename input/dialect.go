package input

import (
	"regexp"
	"strings"
)

// Dialect is the shell flavour a command was written for.
type Dialect int

const (
	Bash Dialect = iota
	WindowsCmd
)

func (d Dialect) String() string {
	switch d {
	case Bash:
		return "bash"
	case WindowsCmd:
		return "cmd"
	default:
		return "unknown"
	}
}

var (
	reCmdContinuation  = regexp.MustCompile(`\s*\^[ \t]*(?:\r?\n|$)\s*`)
	reBashContinuation = regexp.MustCompile(`\\[ \t]*\r?\n`)
	reNewline          = regexp.MustCompile(`\r?\n`)
)

// DetectDialect treats any caret in raw as a sign of a CMD command line.
// A bash command whose URL or header contains a literal caret is therefore
// misclassified; callers that know better can not override this.
func DetectDialect(raw string) Dialect {
	if strings.Contains(raw, "^") {
		return WindowsCmd
	}
	return Bash
}

// normalize joins continued lines so the command reads as a single line.
// Caret continuations have to go first, otherwise the newline after the
// caret would already be gone and the caret would look like an escape.
func normalize(raw string) string {
	s := reCmdContinuation.ReplaceAllString(raw, " ")
	s = reBashContinuation.ReplaceAllString(s, " ")
	return reNewline.ReplaceAllString(s, " ")
}
