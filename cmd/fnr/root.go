package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/fnr/pkg/config"
	"github.com/arthur-debert/fnr/pkg/logging"
)

var (
	verbosity       int
	baseDir         string
	regexMode       bool
	entryType       string
	dryRun          bool
	noInteractive   bool
	noRecursive     bool
	caseSensitive   bool
	hidden          bool
	noColor         bool
	noSymlink       bool
	noSkipGitignore bool
	maxDepth        int
	minDepth        int

	// exitCode is what main exits with after a clean Execute: non-zero
	// when the summary holds conflicted or failed items
	exitCode int

	rootCmd = &cobra.Command{
		Use:   "fnr PATTERN [REPLACEMENT] [GLOB...]",
		Short: MsgRootShort,
		Long:  MsgRootLong,
		Args:  cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.Flags().StringVarP(&baseDir, "base-dir", "d", ".", MsgFlagBaseDir)
	rootCmd.Flags().BoolVarP(&regexMode, "regex", "r", false, MsgFlagRegex)
	rootCmd.Flags().StringVarP(&entryType, "type", "t", "both", MsgFlagType)
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().BoolVar(&noInteractive, "no-interactive", false, MsgFlagNoInteractive)
	rootCmd.Flags().BoolVar(&noRecursive, "no-recursive", false, MsgFlagNoRecursive)
	rootCmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, MsgFlagCaseSensitive)
	rootCmd.Flags().BoolVar(&hidden, "hidden", false, MsgFlagHidden)
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.Flags().BoolVar(&noSymlink, "no-symlink", false, MsgFlagNoSymlink)
	rootCmd.Flags().BoolVar(&noSkipGitignore, "no-skip-gitignore", false, MsgFlagNoSkipGitignore)
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, MsgFlagMaxDepth)
	rootCmd.Flags().IntVar(&minDepth, "min-depth", 0, MsgFlagMinDepth)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(genconfigCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: MsgVersionShort,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fnr %s (commit %s, built %s)\n", version, commit, date)
	},
}

var genconfigForce bool

var genconfigCmd = &cobra.Command{
	Use:   "genconfig",
	Short: MsgGenconfigShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteDefault(".fnr.toml", genconfigForce); err != nil {
			return err
		}
		fmt.Println("Wrote .fnr.toml")
		return nil
	},
}

func init() {
	genconfigCmd.Flags().BoolVar(&genconfigForce, "force", false, MsgFlagForce)
}
