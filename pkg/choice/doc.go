// Package choice holds the values that record a user's decision for a rule.
//
// A Choice is one of three variants: Defined (an option picked on a
// static rule), Generated (the ids switched off on a generated rule) and
// Holder (the choices of every child of a rule holder). All variants are
// immutable once built; accessors hand out copies of any collection.
package choice
