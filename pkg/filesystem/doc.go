// Package filesystem provides filesystem implementations for modpick.
//
// NewOS wraps the real filesystem; NewAferoFS and NewMemory wrap afero
// filesystems and are what the tests use.
package filesystem
