package main

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/fnr/pkg/config"
	"github.com/arthur-debert/fnr/pkg/display"
	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/executor"
	"github.com/arthur-debert/fnr/pkg/filesystem"
	"github.com/arthur-debert/fnr/pkg/globfilter"
	"github.com/arthur-debert/fnr/pkg/interaction"
	"github.com/arthur-debert/fnr/pkg/matcher"
	"github.com/arthur-debert/fnr/pkg/planner"
	"github.com/arthur-debert/fnr/pkg/traverse"
	"github.com/arthur-debert/fnr/pkg/types"
)

// options is the fully resolved configuration bundle handed to the core:
// flags layered over the config file layered over built-in defaults.
type options struct {
	pattern     string
	replacement string
	globs       []string
	searchMode  bool
	regex       bool
	caseSens    bool
	interactive bool
	dryRun      bool
	color       bool
	traversal   types.TraversalConfig
}

func resolveOptions(cmd *cobra.Command, args []string) (options, error) {
	settings, err := config.Load(baseDir)
	if err != nil {
		return options{}, err
	}

	// A flag given on the command line beats the config file
	boolOf := func(name string, flagValue, configValue bool) bool {
		if cmd.Flags().Changed(name) {
			return flagValue
		}
		return configValue
	}

	opts := options{
		pattern:    args[0],
		searchMode: true,
		regex:      regexMode,
		caseSens:   boolOf("case-sensitive", caseSensitive, settings.CaseSensitive),
		dryRun:     dryRun,
	}
	if len(args) > 1 {
		opts.searchMode = false
		opts.replacement = args[1]
		opts.globs = args[2:]
	}

	opts.interactive = boolOf("no-interactive", !noInteractive, settings.Interactive)
	opts.color = boolOf("no-color", !noColor, settings.Color) && display.DetectColor(os.Stdout)

	if minDepth < 0 || maxDepth < 0 {
		return options{}, errors.New(errors.ErrInvalidInput, "depth limits must not be negative")
	}

	var filter types.EntryFilter
	switch entryType {
	case "file":
		filter = types.FilterFile
	case "dir":
		filter = types.FilterDir
	case "both":
		filter = types.FilterBoth
	default:
		return options{}, errors.Newf(errors.ErrInvalidInput, "unknown entry type %q, expected file, dir or both", entryType)
	}

	opts.traversal = types.TraversalConfig{
		BaseDir:          baseDir,
		Recursive:        boolOf("no-recursive", !noRecursive, settings.Recursive),
		MinDepth:         minDepth,
		MaxDepth:         maxDepth,
		Hidden:           boolOf("hidden", hidden, settings.Hidden),
		FollowSymlinks:   boolOf("no-symlink", !noSymlink, settings.FollowSymlinks),
		RespectGitignore: boolOf("no-skip-gitignore", !noSkipGitignore, settings.RespectGitignore),
		Filter:           filter,
	}
	return opts, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd, args)
	if err != nil {
		return err
	}
	if !opts.color {
		pterm.DisableStyling()
	}

	var m *matcher.Matcher
	if opts.regex {
		m, err = matcher.NewRegex(opts.pattern, opts.replacement, opts.caseSens)
	} else {
		m, err = matcher.NewLiteral(opts.pattern, opts.replacement, opts.caseSens)
	}
	if err != nil {
		return err
	}

	globs, err := globfilter.New(opts.globs)
	if err != nil {
		return err
	}

	walker, err := traverse.New(opts.traversal)
	if err != nil {
		return err
	}

	renderer := display.NewRenderer(os.Stdout, m, opts.color)

	if opts.searchMode {
		runSearch(walker, globs, m, renderer, opts.traversal.Filter)
		return nil
	}

	fs := filesystem.NewOS()
	plan := planner.New(planner.Options{
		FS:      fs,
		Matcher: m,
		Globs:   globs,
		Filter:  opts.traversal.Filter,
	}).Build(walker)

	if plan.IsEmpty() {
		renderer.NoMatches()
		return nil
	}

	var decider types.Decider
	if opts.dryRun {
		renderer.DryRunHeader()
		decider = interaction.New(interaction.Options{Interactive: false})
	} else if opts.interactive {
		reader := interaction.NewTerminalReader(os.Stdin)
		reader.Echo = renderer.EchoKey
		decider = interaction.New(interaction.Options{
			Reader:      reader,
			Interactive: true,
			Prompt: func(item types.RenameItem) {
				renderer.Proposal(item)
				renderer.Prompt()
			},
		})
	} else {
		decider = interaction.New(interaction.Options{Interactive: false})
	}

	summary := executor.New(executor.Options{FS: fs, DryRun: opts.dryRun}).
		Run(plan, decider, renderer.Result)

	renderer.Summary(summary)
	if !summary.Clean() {
		exitCode = 1
	}
	return nil
}

// runSearch lists matching entries without renaming anything.
func runSearch(walker *traverse.Walker, globs *globfilter.Filter, m *matcher.Matcher, renderer *display.Renderer, filter types.EntryFilter) {
	for {
		entry, ok := walker.Next()
		if !ok {
			return
		}
		if !filter.Admits(entry.Kind) {
			continue
		}
		if !globs.Candidate(entry.RelPath) {
			continue
		}
		if !m.Matches(filepath.Base(entry.Path)) {
			continue
		}
		renderer.SearchEntry(entry)
	}
}
