// Package style renders modpick's human readable output: the rule tree, the
// exclusions and errors. Styling uses lipgloss; a plain Printer emits the
// same layout without escape sequences.
package style
