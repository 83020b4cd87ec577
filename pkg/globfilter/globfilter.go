// Package globfilter decides whether a path is a rename candidate at all,
// from an ordered list of include and exclude glob patterns.
//
// Selection follows gitignore-style override semantics: among all patterns
// that match a path, the last one in declaration order wins, and it wins as
// an exclude when it starts with "!". A path matched by no pattern is not a
// candidate; an empty pattern list admits every path.
package globfilter

import (
	"strings"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

type pattern struct {
	raw     string
	glob    string
	negated bool
}

// Filter is a compiled set of glob patterns. Patterns support *, **, ?,
// [...] and brace expansion, and match the path relative to the base
// directory, slash-separated.
type Filter struct {
	patterns []pattern
	logger   zerolog.Logger
}

// New compiles the given patterns in declaration order. A leading "!" marks
// a pattern as an exclude.
func New(specs []string) (*Filter, error) {
	f := &Filter{logger: logging.GetLogger("globfilter")}
	for _, spec := range specs {
		p := pattern{raw: spec, glob: spec}
		if strings.HasPrefix(spec, "!") {
			p.negated = true
			p.glob = spec[1:]
		}
		if p.glob == "" || !doublestar.ValidatePattern(p.glob) {
			return nil, errors.Newf(errors.ErrInvalidGlob, "invalid glob pattern %q", spec)
		}
		f.patterns = append(f.patterns, p)
	}
	return f, nil
}

// Empty reports whether the filter has no patterns and admits everything.
func (f *Filter) Empty() bool {
	return len(f.patterns) == 0
}

// Candidate reports whether relPath survives the pattern list.
func (f *Filter) Candidate(relPath string) bool {
	if len(f.patterns) == 0 {
		return true
	}
	matched := false
	included := false
	for _, p := range f.patterns {
		if doublestar.MatchUnvalidated(p.glob, relPath) {
			matched = true
			included = !p.negated
		}
	}
	if !matched {
		return false
	}
	if !included {
		f.logger.Trace().Str("path", relPath).Msg("Path excluded by glob")
	}
	return included
}
