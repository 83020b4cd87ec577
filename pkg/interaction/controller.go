// Package interaction walks the execution plan obtaining one decision per
// item. The session state is an explicit value threaded through the
// controller, never a hidden global, so scripted readers can drive it in
// tests.
package interaction

import (
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/rs/zerolog"
)

// State is the sticky session state of an interactive run.
type State int

const (
	// StatePrompting reads one decision per item
	StatePrompting State = iota
	// StateApproveAll auto-approves every remaining item without prompting
	StateApproveAll
	// StateAborted stops prompting and applying; already-applied renames stay
	StateAborted
)

// Options configures a Controller.
type Options struct {
	// Reader supplies decisions while the session is prompting. Ignored
	// when Interactive is false.
	Reader types.DecisionReader

	// Interactive false auto-approves every item.
	Interactive bool

	// Prompt, when set, is called right before a decision is read. The
	// presentation layer uses it to show the proposed rename.
	Prompt func(item types.RenameItem)
}

// Controller implements types.Decider over a decision reader.
type Controller struct {
	reader      types.DecisionReader
	interactive bool
	prompt      func(types.RenameItem)
	state       State
	logger      zerolog.Logger
}

// New creates a controller in the prompting state.
func New(opts Options) *Controller {
	return &Controller{
		reader:      opts.Reader,
		interactive: opts.Interactive,
		prompt:      opts.Prompt,
		logger:      logging.GetLogger("interaction"),
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state
}

// Decide returns the decision for one plan item. ApproveAll and Quit are
// sticky: once either is chosen the reader is never consulted again.
func (c *Controller) Decide(item types.RenameItem) (types.Decision, error) {
	switch c.state {
	case StateAborted:
		return types.DecisionQuit, nil
	case StateApproveAll:
		return types.DecisionApprove, nil
	}
	if !c.interactive {
		return types.DecisionApprove, nil
	}

	if c.prompt != nil {
		c.prompt(item)
	}
	decision, err := c.reader.NextDecision()
	if err != nil {
		c.state = StateAborted
		return types.DecisionQuit, err
	}

	switch decision {
	case types.DecisionApproveAll:
		c.state = StateApproveAll
		c.logger.Debug().Str("item", item.Path).Msg("Session switched to approve-all")
	case types.DecisionQuit:
		c.state = StateAborted
		c.logger.Debug().Str("item", item.Path).Msg("Session aborted by user")
	}
	return decision, nil
}
