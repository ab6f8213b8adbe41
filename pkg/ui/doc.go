// Package ui holds the terminal side of modpick: output format detection
// and the presenters that drive rule updates.
//
// ConsolePresenter asks its questions through a Prompter; TerminalPrompter
// is the pterm-backed one used by the CLI. AcceptPresenter keeps every
// value as it is and is used when no terminal is available.
package ui
