// Package filesystem provides the filesystem implementations used by
// symkeeper and the Port the reconciliation engine talks to.
//
// The implementations of types.FS are the OS filesystem, an afero-backed
// filesystem for tests, and two decorators: a reporting filesystem that
// announces every mutation before performing it, and a dry-run filesystem
// that announces mutations without performing them. Dry-run mode is chosen
// by picking the decorator; nothing above this package branches on it.
package filesystem
