package mods

import (
	"archive/zip"
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/filesystem"
	"github.com/rs/zerolog"
)

// DirectoryWalker lists the mods of directories below a game directory.
type DirectoryWalker struct {
	root   string
	fs     filesystem.FS
	logger zerolog.Logger
}

// NewDirectoryWalker returns a walker resolving logical directories such as
// "mods" against root.
func NewDirectoryWalker(root string, fsys filesystem.FS, logger zerolog.Logger) *DirectoryWalker {
	return &DirectoryWalker{root: root, fs: fsys, logger: logger}
}

// Walk calls visit for every mod in dir, in file name order. A missing
// directory holds no mods. An error from visit stops the walk and is
// returned as is.
func (w *DirectoryWalker) Walk(dir string, visit func(Metadata) error) error {
	path := dir
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.root, dir)
	}

	entries, err := w.fs.ReadDir(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			w.logger.Debug().Str("dir", path).Msg("Mod directory does not exist")
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to list mod directory %s", path)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(path, entry.Name())

		var data []byte
		switch {
		case entry.IsDir():
			data, err = w.readUnpacked(entryPath)
		case strings.HasSuffix(strings.ToLower(entry.Name()), ".jar"):
			data, err = w.readJar(entryPath)
		default:
			w.logger.Trace().Str("path", entryPath).Msg("Not a mod, skipping")
			continue
		}
		if err != nil {
			return err
		}
		if data == nil {
			w.logger.Debug().Str("path", entryPath).Msg("No mod metadata found, skipping")
			continue
		}

		meta, err := ParseMetadata(data)
		if err != nil {
			return errors.Wrapf(err, errors.ErrScan, "failed to read metadata of %s", entryPath)
		}
		meta.Path = entryPath

		w.logger.Trace().Str("id", meta.ID).Str("path", entryPath).Msg("Found mod")
		if err := visit(meta); err != nil {
			return err
		}
	}
	return nil
}

func (w *DirectoryWalker) readUnpacked(dir string) ([]byte, error) {
	data, err := w.fs.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s in %s", MetadataFile, dir)
	}
	return data, nil
}

func (w *DirectoryWalker) readJar(path string) ([]byte, error) {
	raw, err := w.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	archive, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScan, "%s is not a valid jar", path)
	}

	f, err := archive.Open(MetadataFile)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrScan, "failed to open %s in %s", MetadataFile, path)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScan, "failed to read %s in %s", MetadataFile, path)
	}
	return data, nil
}
