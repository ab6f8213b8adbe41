// Package texts renders the display strings referenced by rules.
//
// Strings are referenced by dotted keys. A display value starting with "@"
// is a key reference; anything else is shown literally. The English table is
// built in; language files named <language>.yaml found in the configured
// directories add to it or override it.
package texts

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/filesystem"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the language of the built-in table.
const DefaultLanguage = "en_us"

// RefPrefix marks a display value as a key reference.
const RefPrefix = "@"

//go:embed lang/en_us.yaml
var builtin []byte

// Table is a flat key to string lookup.
type Table struct {
	entries map[string]string
	logger  zerolog.Logger
}

// Builtin returns the built-in English table.
func Builtin() *Table {
	t := &Table{entries: map[string]string{}, logger: zerolog.Nop()}
	if err := t.merge(builtin); err != nil {
		panic(fmt.Sprintf("invalid built-in language table: %v", err))
	}
	return t
}

// Load builds the table for lang: the built-in strings, then every
// <lang>.yaml found in dirs, later directories winning.
func Load(lang string, dirs []string, fsys filesystem.FS, logger zerolog.Logger) (*Table, error) {
	t := Builtin()
	t.logger = logger
	if lang == "" {
		lang = DefaultLanguage
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, lang+".yaml")
		data, err := fsys.ReadFile(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				logger.Debug().Str("path", path).Msg("No language file")
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read language file %s", path)
		}
		if err := t.merge(data); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid language file %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded language file")
	}
	return t, nil
}

func (t *Table) merge(data []byte) error {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	flatten("", doc, t.entries)
	return nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(key, val, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Text renders key. The leading "@" is optional. Unknown keys render as the
// key itself.
func (t *Table) Text(key string) string {
	key = strings.TrimPrefix(key, RefPrefix)
	if s, ok := t.entries[key]; ok {
		return s
	}
	t.logger.Trace().Str("key", key).Msg("Missing text")
	return key
}

// Format renders key as a fmt template applied to args.
func (t *Table) Format(key string, args ...any) string {
	return fmt.Sprintf(t.Text(key), args...)
}

// Resolve renders a display value: "@key" references are looked up, any
// other value is returned unchanged.
func (t *Table) Resolve(value string) string {
	if strings.HasPrefix(value, RefPrefix) {
		return t.Text(value)
	}
	return value
}

// Has reports whether key is defined.
func (t *Table) Has(key string) bool {
	_, ok := t.entries[strings.TrimPrefix(key, RefPrefix)]
	return ok
}
