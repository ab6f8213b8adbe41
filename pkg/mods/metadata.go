package mods

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/muhammadmuzzammil1998/jsonc"

	"github.com/arthur-debert/modpick/pkg/errors"
)

// MetadataFile is the descriptor every mod carries at its root.
const MetadataFile = "fabric.mod.json"

// Metadata describes one discovered mod.
type Metadata struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`

	// Path is the jar or directory the metadata was read from.
	Path string `json:"-"`
}

// DisplayName returns the declared name, or the id when the mod declares
// none.
func (m Metadata) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// ParseMetadata decodes a fabric.mod.json document. Comments are allowed.
func ParseMetadata(data []byte) (Metadata, error) {
	var m Metadata
	if err := jsoniter.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return Metadata{}, errors.Wrap(err, errors.ErrConfigParse, "invalid mod metadata")
	}
	if m.ID == "" {
		return Metadata{}, errors.New(errors.ErrConfigInvalid, "mod metadata has no id")
	}
	return m, nil
}
