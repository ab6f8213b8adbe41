// Package watch reports changes to the files modpick reads, so that
// exclusions can be kept up to date while a launcher edits choices or mods
// are added.
package watch
