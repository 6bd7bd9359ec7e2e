package symkeeper

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A declarative symlink manager"
	MsgSyncShort       = "Create, update and clean up configured symlinks"
	MsgCleanShort      = "Remove links dropped from the configuration"
	MsgStatusShort     = "Show the state of managed symlinks"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgUpToDate      = "Everything is up to date."
	MsgWatching      = "Watching %s for changes, press Ctrl-C to stop."
	MsgVersionFormat = "symkeeper version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrSettings = "failed to load settings: %w"
	MsgErrNoArgs   = "no command specified"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagConfig  = "Configuration file (default: ./symkeeper.toml, then $XDG_CONFIG_HOME/symkeeper/symkeeper.toml)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagForce   = "Overwrite links and files symkeeper did not create or that drifted"
	MsgFlagWatch   = "Keep running and sync again whenever the configuration changes"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/clean-long.txt
	msgCleanLongRaw string
	MsgCleanLong    = strings.TrimSpace(msgCleanLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
