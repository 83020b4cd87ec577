package interaction

import (
	"os"

	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// TerminalReader reads single-keystroke decisions from a terminal without
// waiting for Enter. The terminal is put into raw mode for each read and
// restored before returning.
type TerminalReader struct {
	in     *os.File
	logger zerolog.Logger

	// Echo, when set, is called with the character the chosen key echoes
	// as, so the prompt line shows what was pressed.
	Echo func(key string)
}

// NewTerminalReader creates a reader over the given terminal, normally
// os.Stdin.
func NewTerminalReader(in *os.File) *TerminalReader {
	return &TerminalReader{
		in:     in,
		logger: logging.GetLogger("interaction.terminal"),
	}
}

// NextDecision implements types.DecisionReader. Keys are case-insensitive:
// y or Enter approves, n skips, a approves all, q, Esc or Ctrl-C quits.
// Any other key is ignored and the read continues.
func (r *TerminalReader) NextDecision() (types.Decision, error) {
	fd := int(r.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return types.DecisionQuit, err
	}
	defer func() {
		if restoreErr := term.Restore(fd, oldState); restoreErr != nil {
			r.logger.Warn().Err(restoreErr).Msg("Failed to restore terminal state")
		}
	}()

	buf := make([]byte, 1)
	for {
		if _, err := r.in.Read(buf); err != nil {
			return types.DecisionQuit, err
		}
		switch buf[0] {
		case 'y', 'Y', '\r', '\n':
			r.echo("y")
			return types.DecisionApprove, nil
		case 'n', 'N':
			r.echo("n")
			return types.DecisionSkip, nil
		case 'a', 'A':
			r.echo("a")
			return types.DecisionApproveAll, nil
		case 'q', 'Q', 0x1b, 0x03: // q, Esc, Ctrl-C
			r.echo("q")
			return types.DecisionQuit, nil
		}
	}
}

func (r *TerminalReader) echo(key string) {
	if r.Echo != nil {
		r.Echo(key)
	}
}
