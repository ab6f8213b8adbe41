// Package rules implements the questionnaire's rule tree and its resolution
// into mod exclusions.
//
// # Rule variants
//
// A tree is built from three kinds of rule:
//
//   - DefinedRule offers a fixed list of options. An option may carry nested
//     rules that only apply while it is selected.
//   - GeneratedRule scans mod directories on first use and synthesizes one
//     on/off DefinedRule per mod found. Mods listed in its defaults start off.
//   - NestedRule groups child rules under a caption, optionally letting the
//     user disable the whole group.
//
// The root of the tree is Rules. The root, NestedRule, GeneratedRule and each
// Option are RuleHolders: they own an ordered list of child rules and title
// the screen that lists them.
//
// # Resolution
//
// Resolving walks the tree alongside a choice.Holder. Each rule looks up its
// choice by id, falls back to its default when the choice is missing or of the
// wrong variant, and writes the ids to exclude into an Exclusions map keyed by
// mod directory:
//
//	root := rules.NewRules(children, logger)
//	excl, err := root.Resolve(saved)
//	// excl["mods"] holds the mod ids to disable in the mods directory
//
// A disabled GeneratedRule writes nothing: the mods it governs are left alone.
//
// # Updating choices
//
// UpdateChoice hands the interaction to a Presenter and returns a
// future.Future that completes with the new choice, fails, or is cancelled.
// A cancelled nested interaction cancels the whole chain; callers keep their
// previous choice.
package rules
