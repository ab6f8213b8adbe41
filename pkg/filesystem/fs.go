package filesystem

import (
	"io/fs"
)

// FS is the filesystem surface modpick needs. The mod walker reads jar
// archives and unpacked mod directories through it; the rules and choices
// files are loaded and saved through it.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error
}

// Exists reports whether name can be stat'ed on fsys.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}
