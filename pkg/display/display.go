// Package display renders the rename stream for the terminal: proposed
// renames with the changed spans highlighted, per-item outcomes, search
// listings and the final summary.
package display

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fnr/pkg/matcher"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// DetectColor reports whether colored output makes sense for f: a real
// terminal with a color-capable profile.
func DetectColor(f *os.File) bool {
	if !isatty.IsTerminal(f.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// Renderer owns the output writer. It re-applies the matcher to base names
// to recover the changed spans for highlighting.
type Renderer struct {
	out     io.Writer
	matcher *matcher.Matcher
	color   bool

	matchStyle  lipgloss.Style
	promptStyle lipgloss.Style
	labelStyle  lipgloss.Style
	arrowStyle  lipgloss.Style
	fileStyle   lipgloss.Style
	dirStyle    lipgloss.Style
	headerStyle lipgloss.Style
	errStyle    lipgloss.Style
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, m *matcher.Matcher, color bool) *Renderer {
	return &Renderer{
		out:         out,
		matcher:     m,
		color:       color,
		matchStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		promptStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		labelStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		arrowStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		fileStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		dirStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		headerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		errStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Proposal prints the two-line old/new rename offer with the matched spans
// of the old name and the substituted spans of the new name highlighted.
func (r *Renderer) Proposal(item types.RenameItem) {
	parent := filepath.Dir(item.Path) + string(filepath.Separator)
	rw := r.matcher.Apply(item.Name())

	fmt.Fprintf(r.out, "    %s%s\n", parent, r.highlight(item.Name(), rw.OldSpans))
	fmt.Fprintf(r.out, " -> %s%s\n", parent, r.highlight(rw.Name, rw.NewSpans))
}

// Prompt prints the decision question without a trailing newline.
func (r *Renderer) Prompt() {
	q := "Replace filename/dirname? [Y]es/[n]o/[a]ll/[q]uit:"
	if r.color {
		q = r.promptStyle.Render(q)
	}
	fmt.Fprintf(r.out, "%s ", q)
}

// EchoKey terminates the prompt line with the key that was pressed.
func (r *Renderer) EchoKey(key string) {
	fmt.Fprintf(r.out, "%s\n", key)
}

// DryRunHeader announces a simulated session.
func (r *Renderer) DryRunHeader() {
	h := "Dry run - showing what would be renamed:"
	if r.color {
		h = r.headerStyle.Render(h)
	}
	fmt.Fprintln(r.out, h)
}

// NoMatches reports an empty plan.
func (r *Renderer) NoMatches() {
	fmt.Fprintln(r.out, "No matches found.")
}

// Result prints one executed item.
func (r *Renderer) Result(res types.Result) {
	switch res.Outcome {
	case types.OutcomeApplied:
		label, arrow := "Renamed:", "->"
		if r.color {
			label = r.labelStyle.Render(label)
			arrow = r.arrowStyle.Render(arrow)
		}
		fmt.Fprintf(r.out, "%s %s %s %s\n", label, res.Item.Path, arrow, res.Item.NewPath())
	case types.OutcomeFailed:
		label := "Failed:"
		if r.color {
			label = r.errStyle.Render(label)
		}
		fmt.Fprintf(r.out, "%s %v\n", label, res.Err)
	case types.OutcomeConflicted:
		label := "Conflict:"
		if r.color {
			label = r.errStyle.Render(label)
		}
		fmt.Fprintf(r.out, "%s %s -> %s (destination contested, not renamed)\n",
			label, res.Item.Path, res.Item.NewPath())
	case types.OutcomeDryRun:
		r.Proposal(res.Item)
	}
}

// SearchEntry prints one search-mode line: a colored type tag and the path.
func (r *Renderer) SearchEntry(e types.Entry) {
	tag := "f"
	style := r.fileStyle
	if e.Kind == types.KindDir {
		tag = "d"
		style = r.dirStyle
	}
	if r.color {
		tag = style.Render(tag)
	}
	fmt.Fprintf(r.out, "[%s] %s\n", tag, e.Path)
}

// Summary renders the final counts and failure reasons.
func (r *Renderer) Summary(s types.Summary) {
	items := []pterm.BulletListItem{
		{Level: 0, Text: fmt.Sprintf("applied: %d", s.Applied)},
		{Level: 0, Text: fmt.Sprintf("skipped: %d", s.Skipped)},
		{Level: 0, Text: fmt.Sprintf("conflicted: %d", s.Conflicted)},
		{Level: 0, Text: fmt.Sprintf("failed: %d", s.Failed)},
	}
	if s.DryRun > 0 {
		items = append(items, pterm.BulletListItem{Level: 0, Text: fmt.Sprintf("dry-run: %d", s.DryRun)})
	}
	for _, err := range s.Failures {
		items = append(items, pterm.BulletListItem{Level: 1, Text: err.Error()})
	}

	fmt.Fprintln(r.out)
	if err := pterm.DefaultBulletList.WithWriter(r.out).WithItems(items).Render(); err != nil {
		// Degrade to plain lines if the fancy printer cannot render
		for _, it := range items {
			fmt.Fprintf(r.out, "%s- %s\n", strings.Repeat("  ", it.Level), it.Text)
		}
	}
}

// highlight styles the given byte spans of name.
func (r *Renderer) highlight(name string, spans [][2]int) string {
	if !r.color || len(spans) == 0 {
		return name
	}
	var b strings.Builder
	last := 0
	for _, span := range spans {
		b.WriteString(name[last:span[0]])
		b.WriteString(r.matchStyle.Render(name[span[0]:span[1]]))
		last = span[1]
	}
	b.WriteString(name[last:])
	return b.String()
}
