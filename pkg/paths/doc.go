// Package paths provides centralized path handling for symkeeper.
//
// It covers three concerns:
//
//   - Where symkeeper keeps its own files (XDG config and state directories)
//   - Which configuration file a run uses and where its lock file lives
//   - Turning the raw strings of a configuration entry into absolute,
//     environment-expanded paths (see Resolver)
//
// # Environment Variables
//
//   - SYMKEEPER_CONFIG_DIR: Override the XDG config directory
//     (default: $XDG_CONFIG_HOME/symkeeper)
//   - SYMKEEPER_STATE_DIR: Override the XDG state directory
//     (default: $XDG_STATE_HOME/symkeeper)
//
// # Expansion
//
// Configuration strings may use $VAR, ${VAR}, ${VAR:-default}, a leading
// ~ and ~/. A variable that is neither set in the process environment nor
// in the env file next to the configuration is an ENV_EXPANSION error.
// Relative results are resolved against the configuration file's directory.
package paths
