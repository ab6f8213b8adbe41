// Package modpick implements the modpick command line: loading the
// configuration, the rules file and the saved choices, and wiring them to
// the interactive presenter and the output renderers.
package modpick
