// Package matcher decides whether an entry's base name matches the search
// pattern and computes its replacement. Patterns apply to base names only,
// never to the directory prefix.
package matcher

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/rs/zerolog"
)

// Rewrite is the result of applying a matcher to a base name. Spans are
// byte ranges used by the display layer to highlight what changed: OldSpans
// index into the original name, NewSpans into Name.
type Rewrite struct {
	Name     string
	Changed  bool
	OldSpans [][2]int
	NewSpans [][2]int
}

// Matcher holds a compiled pattern, either literal or regex. Zero value is
// not usable; construct with NewLiteral or NewRegex.
type Matcher struct {
	pattern       string
	replacement   string
	re            *regexp.Regexp
	caseSensitive bool
	logger        zerolog.Logger
}

// NewLiteral creates a substring matcher. An empty pattern is rejected
// before any traversal begins.
func NewLiteral(pattern, replacement string, caseSensitive bool) (*Matcher, error) {
	if pattern == "" {
		return nil, errors.New(errors.ErrInvalidPattern, "pattern must not be empty")
	}
	return &Matcher{
		pattern:       pattern,
		replacement:   replacement,
		caseSensitive: caseSensitive,
		logger:        logging.GetLogger("matcher"),
	}, nil
}

// NewRegex creates a regex matcher. The pattern is not anchored: it matches
// anywhere in the base name, possibly multiple times. Capture groups are
// addressable from the replacement as $1, $2, ...
func NewRegex(pattern, replacement string, caseSensitive bool) (*Matcher, error) {
	if pattern == "" {
		return nil, errors.New(errors.ErrInvalidPattern, "pattern must not be empty")
	}
	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidRegex, "cannot compile pattern %q", pattern)
	}
	return &Matcher{
		pattern:       pattern,
		replacement:   replacement,
		re:            re,
		caseSensitive: caseSensitive,
		logger:        logging.GetLogger("matcher"),
	}, nil
}

// IsRegex reports whether the matcher was built from a regex pattern.
func (m *Matcher) IsRegex() bool {
	return m.re != nil
}

// Matches reports whether the base name matches at all. Used by search mode,
// which lists matches without computing replacements.
func (m *Matcher) Matches(name string) bool {
	if m.re != nil {
		return m.re.MatchString(name)
	}
	hay, pat := m.fold(name)
	return strings.Contains(hay, pat)
}

// Apply computes the new base name, replacing every non-overlapping
// occurrence of the pattern.
func (m *Matcher) Apply(name string) Rewrite {
	var rw Rewrite
	if m.re != nil {
		rw = m.applyRegex(name)
	} else {
		rw = m.applyLiteral(name)
	}
	rw.Changed = len(rw.OldSpans) > 0 && rw.Name != name
	return rw
}

// fold lowercases haystack and pattern for case-insensitive comparison.
// Lowercasing can change byte length for a handful of Unicode characters
// (Turkish dotted I and friends); when it does, span offsets into the
// original name would drift, so matching for that name falls back to an
// exact, case-sensitive comparison.
func (m *Matcher) fold(name string) (hay, pat string) {
	if m.caseSensitive {
		return name, m.pattern
	}
	hay, pat = strings.ToLower(name), strings.ToLower(m.pattern)
	if len(hay) != len(name) || len(pat) != len(m.pattern) {
		return name, m.pattern
	}
	return hay, pat
}

func (m *Matcher) applyLiteral(name string) Rewrite {
	hay, pat := m.fold(name)

	var b strings.Builder
	var oldSpans, newSpans [][2]int
	last := 0
	for i := 0; ; {
		j := strings.Index(hay[i:], pat)
		if j < 0 {
			break
		}
		j += i
		b.WriteString(name[last:j])
		oldSpans = append(oldSpans, [2]int{j, j + len(pat)})
		newSpans = append(newSpans, [2]int{b.Len(), b.Len() + len(m.replacement)})
		b.WriteString(m.replacement)
		last = j + len(pat)
		i = last
	}
	b.WriteString(name[last:])

	return Rewrite{Name: b.String(), OldSpans: oldSpans, NewSpans: newSpans}
}

func (m *Matcher) applyRegex(name string) Rewrite {
	locs := m.re.FindAllStringSubmatchIndex(name, -1)
	if locs == nil {
		return Rewrite{Name: name}
	}

	var out []byte
	var oldSpans, newSpans [][2]int
	last := 0
	for _, loc := range locs {
		out = append(out, name[last:loc[0]]...)
		start := len(out)
		out = m.re.ExpandString(out, m.replacement, name, loc)
		oldSpans = append(oldSpans, [2]int{loc[0], loc[1]})
		newSpans = append(newSpans, [2]int{start, len(out)})
		last = loc[1]
	}
	out = append(out, name[last:]...)

	return Rewrite{Name: string(out), OldSpans: oldSpans, NewSpans: newSpans}
}
