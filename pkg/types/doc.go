// Package types defines the core types and interfaces used throughout
// symkeeper: the filesystem abstraction, the desired and persisted link
// sets, and the action plan produced by reconciliation.
package types
