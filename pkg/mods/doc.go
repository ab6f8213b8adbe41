// Package mods discovers installed mods and reads their metadata.
//
// A mod is either a .jar archive or an unpacked directory, each carrying a
// fabric.mod.json at its root. Entries without one are not mods and are
// skipped.
package mods
