// Package installer downloads a resolved release archive, extracts it
// into a scratch directory, normalizes the archive's internal layout, and
// places the package's files under the install root. It touches only the
// filesystem; registry bookkeeping belongs to the caller.
package installer
