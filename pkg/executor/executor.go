// Package executor applies the approved items of an execution plan as
// filesystem renames, or simulates them in dry-run mode.
//
// Execution is strictly sequential in plan order; that ordering is the
// correctness mechanism, not an optimization. Per-item failures are
// recorded and execution continues with the next item.
package executor

import (
	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/filesystem"
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/rs/zerolog"
)

// Options contains configuration for the executor
type Options struct {
	// FS defaults to the OS filesystem
	FS     types.FS
	DryRun bool
	Logger zerolog.Logger
}

// Executor consumes an execution plan exactly once.
type Executor struct {
	fs     types.FS
	dryRun bool
	logger zerolog.Logger
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	return &Executor{
		fs:     fs,
		dryRun: opts.DryRun,
		logger: logger,
	}
}

// Run walks the plan, consulting the decider per item and emitting one
// result per processed item. Conflicted groups are reported first; they are
// never prompted for. A quit decision stops further items without touching
// what was already applied.
func (e *Executor) Run(plan *types.Plan, decider types.Decider, emit func(types.Result)) types.Summary {
	if emit == nil {
		emit = func(types.Result) {}
	}

	var summary types.Summary
	for _, group := range plan.Conflicts {
		for _, item := range group {
			result := types.Result{
				Item:     item,
				Decision: types.DecisionNone,
				Outcome:  types.OutcomeConflicted,
				Err: errors.Newf(errors.ErrConflict,
					"destination %s is claimed by more than one rename or an existing entry", item.NewPath()),
			}
			summary.Record(result)
			emit(result)
		}
	}

	for _, item := range plan.Items {
		decision, err := decider.Decide(item)
		if err != nil {
			e.logger.Warn().Err(err).Msg("Decision input failed, stopping")
			decision = types.DecisionQuit
		}

		switch decision {
		case types.DecisionQuit:
			result := types.Result{Item: item, Decision: types.DecisionQuit, Outcome: types.OutcomeSkipped}
			summary.Record(result)
			emit(result)
			return summary
		case types.DecisionSkip:
			result := types.Result{Item: item, Decision: decision, Outcome: types.OutcomeSkipped}
			summary.Record(result)
			emit(result)
		default:
			result := e.apply(item)
			result.Decision = decision
			summary.Record(result)
			emit(result)
		}
	}
	return summary
}

// apply performs one rename, or simulates it in dry-run mode.
func (e *Executor) apply(item types.RenameItem) types.Result {
	e.logger.Debug().
		Str("from", item.Path).
		Str("to", item.NewPath()).
		Bool("dry_run", e.dryRun).
		Msg("Applying rename")

	if e.dryRun {
		return types.Result{Item: item, Outcome: types.OutcomeDryRun}
	}

	dest := item.NewPath()
	// os.Rename would silently clobber an existing destination
	if _, err := e.fs.Lstat(dest); err == nil {
		failure := errors.Newf(errors.ErrDestExists, "destination %s already exists", dest)
		e.logger.Error().Err(failure).Msg("Rename failed")
		return types.Result{Item: item, Outcome: types.OutcomeFailed, Err: failure}
	}

	if err := e.fs.Rename(item.Path, dest); err != nil {
		failure := errors.Wrapf(err, errors.ErrRenameFailed, "cannot rename %s to %s", item.Path, dest)
		e.logger.Error().Err(failure).Msg("Rename failed")
		return types.Result{Item: item, Outcome: types.OutcomeFailed, Err: failure}
	}

	return types.Result{Item: item, Outcome: types.OutcomeApplied}
}
