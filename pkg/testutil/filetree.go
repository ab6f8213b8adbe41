package testutil

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/arthur-debert/modpick/pkg/filesystem"
)

// MetadataFile is the mod metadata file looked up in jars and unpacked mods.
const MetadataFile = "fabric.mod.json"

// FileTree represents a directory structure for testing. Values are file
// contents (string or []byte) or nested FileTrees.
type FileTree map[string]interface{}

// CreateFileTree recursively creates tree under basePath.
func CreateFileTree(t *testing.T, fs filesystem.FS, basePath string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(basePath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", basePath, err)
	}
	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			writeFile(t, fs, fullPath, []byte(v))
		case []byte:
			writeFile(t, fs, fullPath, v)
		case FileTree:
			CreateFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

func writeFile(t *testing.T, fs filesystem.FS, path string, data []byte) {
	t.Helper()
	if err := fs.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// Mod describes a mod's metadata.
type Mod struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// Metadata renders the mod's metadata file.
func (m Mod) Metadata() string {
	data, err := jsoniter.Marshal(m)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Jar builds a zip archive holding files.
func Jar(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s to jar: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s to jar: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close jar: %v", err)
	}
	return buf.Bytes()
}
