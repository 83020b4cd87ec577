// Package planner joins traversal output with the glob filter and the
// pattern matcher, detects destination conflicts, and produces the ordered
// execution plan.
//
// Filtering order: the entry-type filter is applied first, the glob filter
// second. A directory excluded by --type file never reaches the globs.
package planner

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/fnr/pkg/globfilter"
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/arthur-debert/fnr/pkg/matcher"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/rs/zerolog"
)

// Source is the traversal sequence the planner consumes. traverse.Walker
// implements it; tests feed synthetic entries.
type Source interface {
	Next() (types.Entry, bool)
}

// Options configures a Planner.
type Options struct {
	FS      types.FS
	Matcher *matcher.Matcher
	Globs   *globfilter.Filter
	Filter  types.EntryFilter
}

// Planner builds execution plans. It never mutates the filesystem.
type Planner struct {
	fs      types.FS
	matcher *matcher.Matcher
	globs   *globfilter.Filter
	filter  types.EntryFilter
	logger  zerolog.Logger
}

// New creates a planner.
func New(opts Options) *Planner {
	return &Planner{
		fs:      opts.FS,
		matcher: opts.Matcher,
		globs:   opts.Globs,
		filter:  opts.Filter,
		logger:  logging.GetLogger("planner"),
	}
}

// Build drains the source and returns the plan. Conflicted groups are
// excluded from the plan's items; the planner never guesses a resolution.
func (p *Planner) Build(src Source) *types.Plan {
	var candidates []types.RenameItem
	for {
		entry, ok := src.Next()
		if !ok {
			break
		}
		if !p.filter.Admits(entry.Kind) {
			continue
		}
		if !p.globs.Candidate(entry.RelPath) {
			continue
		}
		rw := p.matcher.Apply(filepath.Base(entry.Path))
		if !rw.Changed {
			// No-op renames are never scheduled
			continue
		}
		candidates = append(candidates, types.RenameItem{
			Path:    entry.Path,
			NewName: rw.Name,
			Kind:    entry.Kind,
			Depth:   entry.Depth,
		})
	}

	plan := p.resolveConflicts(candidates)
	sortPlan(plan.Items)

	var cycles [][]types.RenameItem
	plan.Items, cycles = orderChains(plan.Items)
	for _, cycle := range cycles {
		p.logger.Warn().
			Str("path", cycle[0].Path).
			Int("size", len(cycle)).
			Msg("Rename cycle, group excluded from plan")
		plan.Conflicts = append(plan.Conflicts, cycle)
	}

	p.logger.Debug().
		Int("items", len(plan.Items)).
		Int("conflictGroups", len(plan.Conflicts)).
		Msg("Plan built")
	return plan
}

// resolveConflicts groups candidates by destination. A group is conflicted
// when two or more distinct originals map to the same destination, or when
// the destination already exists on disk and is not itself scheduled to
// move. The whole group is excluded either way.
func (p *Planner) resolveConflicts(candidates []types.RenameItem) *types.Plan {
	scheduled := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		scheduled[c.Path] = true
	}

	byDest := make(map[string][]types.RenameItem)
	var destOrder []string
	for _, c := range candidates {
		dest := c.NewPath()
		if _, seen := byDest[dest]; !seen {
			destOrder = append(destOrder, dest)
		}
		byDest[dest] = append(byDest[dest], c)
	}

	plan := &types.Plan{}
	for _, dest := range destOrder {
		group := byDest[dest]
		conflicted := len(group) > 1
		if !conflicted {
			if _, err := p.fs.Lstat(dest); err == nil && !scheduled[dest] {
				conflicted = true
			}
		}
		if conflicted {
			p.logger.Warn().
				Str("destination", dest).
				Int("size", len(group)).
				Msg("Conflicting destination, group excluded from plan")
			plan.Conflicts = append(plan.Conflicts, group)
			continue
		}
		plan.Items = append(plan.Items, group[0])
	}
	return plan
}

// sortPlan orders items depth-descending with files before directories at
// equal depth. This ordering is the correctness mechanism: no directory is
// renamed before every rename nested beneath it has run, so each step sees
// valid paths.
func sortPlan(items []types.RenameItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Depth != items[j].Depth {
			return items[i].Depth > items[j].Depth
		}
		if items[i].Kind != items[j].Kind {
			return items[i].Kind == types.KindFile
		}
		return items[i].Path < items[j].Path
	})
}

// orderChains moves an item whose destination is another pending item's
// source after that item, so a chain like a->ab, ab->abb vacates ab before
// a claims it. Sources and destinations always share a parent directory, so
// the reordering stays within one depth level and the sortPlan invariant
// holds. Destinations are unique after conflict resolution, which makes
// every dependency component a simple chain or a simple cycle; cycles
// (a<->b swaps) cannot be ordered and are returned for conflict exclusion.
func orderChains(items []types.RenameItem) ([]types.RenameItem, [][]types.RenameItem) {
	bySource := make(map[string]int, len(items))
	for i, it := range items {
		bySource[it.Path] = i
	}

	// after[i] is the index of the item that must run before items[i]
	after := make([]int, len(items))
	for i, it := range items {
		after[i] = -1
		if j, ok := bySource[it.NewPath()]; ok && j != i {
			after[i] = j
		}
	}

	ordered := make([]types.RenameItem, 0, len(items))
	emitted := make([]bool, len(items))
	for {
		progressed := false
		for i := range items {
			if emitted[i] {
				continue
			}
			if after[i] >= 0 && !emitted[after[i]] {
				continue
			}
			ordered = append(ordered, items[i])
			emitted[i] = true
			progressed = true
		}
		if !progressed {
			break
		}
	}

	var cycles [][]types.RenameItem
	for i := range items {
		if emitted[i] {
			continue
		}
		var cycle []types.RenameItem
		for j := i; !emitted[j]; j = after[j] {
			emitted[j] = true
			cycle = append(cycle, items[j])
		}
		cycles = append(cycles, cycle)
	}
	return ordered, cycles
}
