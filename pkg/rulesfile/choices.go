package rulesfile

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/muhammadmuzzammil1998/jsonc"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/filesystem"
	"github.com/arthur-debert/modpick/pkg/rules"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	keyChoice   = "choice"
	keyChoices  = "choices"
	keyDisabled = "disabled"
)

// LoadChoices reads the saved choices at path. A missing file yields a nil
// holder, which resolves every rule to its default.
func LoadChoices(fsys filesystem.FS, path string, root rules.RuleHolder, logger zerolog.Logger) (*choice.Holder, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", path).Msg("No saved choices, using defaults")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read choices file %s", path)
	}
	h, err := DecodeChoices(data, root, logger)
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), "in %s", path)
	}
	return h, nil
}

// DecodeChoices decodes a choices document against the rules of root.
func DecodeChoices(data []byte, root rules.RuleHolder, logger zerolog.Logger) (*choice.Holder, error) {
	var doc map[string]interface{}
	if err := jsoniter.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "malformed choices document")
	}
	children, err := root.Rules()
	if err != nil {
		return nil, err
	}
	d := &choiceDecoder{logger: logger}
	return d.holder(children, doc, "choices"), nil
}

type choiceDecoder struct {
	logger zerolog.Logger
}

func (d *choiceDecoder) drop(path, reason string) {
	d.logger.Warn().Str("path", path).Msg("Ignoring saved choice: " + reason)
}

func (d *choiceDecoder) holder(children []rules.Rule, node map[string]interface{}, path string) *choice.Holder {
	saved, err := cast.ToStringMapE(node[keyChoices])
	if err != nil && node[keyChoices] != nil {
		d.drop(path, "choices is not an object")
	}

	known := make(map[string]bool, len(children))
	entries := make([]choice.Entry, 0, len(children))
	for _, rule := range children {
		known[rule.ID()] = true
		raw, ok := saved[rule.ID()]
		if !ok {
			continue
		}
		if c := d.choice(rule, raw, path+"."+rule.ID()); c != nil {
			entries = append(entries, choice.Entry{ID: rule.ID(), Choice: c})
		}
	}
	for id := range saved {
		if !known[id] {
			d.drop(path+"."+id, "no such rule")
		}
	}

	return choice.NewHolder(entries, cast.ToBool(node[keyDisabled]))
}

func (d *choiceDecoder) choice(rule rules.Rule, raw interface{}, path string) choice.Choice {
	node, err := cast.ToStringMapE(raw)
	if err != nil {
		d.drop(path, "not an object")
		return nil
	}

	switch r := rule.(type) {
	case *rules.DefinedRule:
		id := cast.ToString(node[keyChoice])
		opt, ok := r.Option(id)
		if !ok {
			d.drop(path, "unknown option "+id)
			return nil
		}
		_, hasChoices := node[keyChoices]
		_, hasDisabled := node[keyDisabled]
		if len(opt.Children) == 0 || (!hasChoices && !hasDisabled) {
			return choice.NewDefined(id)
		}
		return choice.NewDefinedNested(id, d.holder(opt.Children, node, path))

	case *rules.GeneratedRule:
		var off []string
		if raw := node[keyChoices]; raw != nil {
			ids, err := cast.ToStringSliceE(raw)
			if err != nil {
				d.drop(path, "choices is not a list")
				return nil
			}
			off = ids
		}
		return choice.NewGenerated(choice.NewSet(off...), cast.ToBool(node[keyDisabled]))

	case *rules.NestedRule:
		children, _ := r.Rules()
		return d.holder(children, node, path)
	}

	d.drop(path, "unsupported rule kind")
	return nil
}

// EncodeChoices renders h as a choices document. Entries keep their order.
func EncodeChoices(h *choice.Holder) ([]byte, error) {
	data, err := jsonAPI.MarshalIndent(encodeHolder(h), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode choices")
	}
	return data, nil
}

func encodeHolder(h *choice.Holder) *orderedmap.OrderedMap[string, any] {
	entries := orderedmap.New[string, any]()
	for _, e := range h.Entries() {
		entries.Set(e.ID, encodeChoice(e.Choice))
	}
	out := orderedmap.New[string, any]()
	out.Set(keyChoices, entries)
	out.Set(keyDisabled, h.Disabled())
	return out
}

func encodeChoice(c choice.Choice) any {
	switch v := c.(type) {
	case *choice.Defined:
		out := orderedmap.New[string, any]()
		out.Set(keyChoice, v.Option())
		if nested := v.Nested(); nested != nil {
			enc := encodeHolder(nested)
			for pair := enc.Oldest(); pair != nil; pair = pair.Next() {
				out.Set(pair.Key, pair.Value)
			}
		}
		return out
	case *choice.Generated:
		out := orderedmap.New[string, any]()
		out.Set(keyChoices, v.Off().Sorted())
		out.Set(keyDisabled, v.Disabled())
		return out
	case *choice.Holder:
		return encodeHolder(v)
	}
	return nil
}

// SaveChoices writes h to path, creating the parent directory.
func SaveChoices(fsys filesystem.FS, path string, h *choice.Holder) error {
	data, err := EncodeChoices(h)
	if err != nil {
		return err
	}
	return writeFile(fsys, path, data)
}

// EncodeExclusions renders e as a JSON object of sorted id lists, keys in
// lexical order.
func EncodeExclusions(e rules.Exclusions) ([]byte, error) {
	out := orderedmap.New[string, []string]()
	for _, dir := range e.Keys() {
		out.Set(dir, e[dir].Sorted())
	}
	data, err := jsonAPI.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode exclusions")
	}
	return data, nil
}

// SaveExclusions writes e to path, creating the parent directory.
func SaveExclusions(fsys filesystem.FS, path string, e rules.Exclusions) error {
	data, err := EncodeExclusions(e)
	if err != nil {
		return err
	}
	return writeFile(fsys, path, data)
}

func writeFile(fsys filesystem.FS, path string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", path)
	}
	if err := fsys.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}
