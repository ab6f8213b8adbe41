// Package paths provides centralized path handling for modpick.
// It resolves the game directory the questionnaire operates on and the
// XDG locations used for the user configuration file and the log file.
package paths
