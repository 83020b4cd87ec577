package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Fast file and directory name search and rename tool"
	MsgVersionShort   = "Print version information"
	MsgGenconfigShort = "Write a starter .fnr.toml with the built-in defaults"

	MsgRootLong = `fnr searches for files and directories whose base name matches a pattern
and batch-renames them with interactive confirmation, regex capture groups,
glob filtering and gitignore awareness.

With only PATTERN, fnr lists matching entries. With REPLACEMENT, it renames
them. Trailing GLOB arguments narrow the candidates; a leading '!' excludes
(e.g. '**/*.rs' '!target/**').`

	// Flag help
	MsgFlagBaseDir         = "Base directory to search from"
	MsgFlagRegex           = "Enable regular expression matching"
	MsgFlagType            = "Filter by entry type: file, dir or both"
	MsgFlagDryRun          = "Show what would be renamed without executing"
	MsgFlagNoInteractive   = "Apply all changes without prompts"
	MsgFlagNoRecursive     = "Don't search subdirectories"
	MsgFlagCaseSensitive   = "Case-sensitive matching"
	MsgFlagHidden          = "Include hidden files and directories"
	MsgFlagNoColor         = "Disable colored output"
	MsgFlagNoSymlink       = "Disable symbolic link follow"
	MsgFlagNoSkipGitignore = "Disable .gitignore skip"
	MsgFlagMaxDepth        = "Maximum depth to search"
	MsgFlagMinDepth        = "Minimum depth to search"
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagForce           = "Overwrite an existing config file"
)
