package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/widgets"
)

// Declaration types accepted by documents in addition to the leaf types.
const (
	TypeArray      = "array"
	TypeDictionary = "dictionary"
)

// Store holds the models loaded from schema documents.
type Store struct {
	models map[string]*Model
}

// LoadFile parses a single JSON or YAML document.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	store := &Store{models: make(map[string]*Model)}
	if err := store.add(data, path); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFS walks fsys and parses every JSON/YAML document it holds. When fsys
// is nil the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{models: make(map[string]*Model)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Model returns the model registered under name.
func (s *Store) Model(name string) (*Model, bool) {
	if s == nil {
		return nil, false
	}
	model, ok := s.models[name]
	return model, ok
}

// Names returns the model names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.models))
	for name := range s.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any models.
func (s *Store) Empty() bool {
	return s == nil || len(s.models) == 0
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for idx, raw := range doc.Models {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			return fmt.Errorf("schema: file %s model %d has no name", source, idx)
		}
		if _, exists := s.models[name]; exists {
			return fmt.Errorf("schema: duplicate model %q (file %s)", name, source)
		}
		model := &Model{Name: name, Columns: make([]Declaration, 0, len(raw.Fields))}
		for _, col := range raw.Fields {
			model.Columns = append(model.Columns, col.declaration())
		}
		s.models[name] = model
	}
	return nil
}

type documentFile struct {
	Models []modelFile `json:"models" yaml:"models"`
}

type modelFile struct {
	Name   string       `json:"name" yaml:"name"`
	Fields []columnFile `json:"fields" yaml:"fields"`
}

type columnFile struct {
	Name          string            `json:"name" yaml:"name"`
	Type          string            `json:"type" yaml:"type"`
	Label         string            `json:"label" yaml:"label"`
	HelpText      string            `json:"help_text" yaml:"help_text"`
	Blank         bool              `json:"blank" yaml:"blank"`
	Format        string            `json:"format" yaml:"format"`
	MaxLength     int               `json:"max_length" yaml:"max_length"`
	MinLength     int               `json:"min_length" yaml:"min_length"`
	MinValue      *int              `json:"min_value" yaml:"min_value"`
	MaxValue      *int              `json:"max_value" yaml:"max_value"`
	Choices       []widgets.Choice  `json:"choices" yaml:"choices"`
	Widget        string            `json:"widget" yaml:"widget"`
	ErrorMessages map[string]string `json:"error_messages" yaml:"error_messages"`

	// dictionary
	Fields []columnFile `json:"fields" yaml:"fields"`

	// array
	Field        *columnFile `json:"field" yaml:"field"`
	Button       string      `json:"button" yaml:"button"`
	DefaultCount *int        `json:"default_count" yaml:"default_count"`
	MaxCount     *int        `json:"max_count" yaml:"max_count"`
}

func (c columnFile) column() Column {
	return Column{
		Name:     strings.TrimSpace(c.Name),
		Label:    c.Label,
		HelpText: c.HelpText,
		Blank:    c.Blank,
	}
}

func (c columnFile) declaration() Declaration {
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case TypeArray:
		return c.array()
	case TypeDictionary:
		dict := &DictionaryColumn{Column: c.column()}
		for _, sub := range c.Fields {
			dict.Fields = append(dict.Fields, sub.declaration())
		}
		return dict
	default:
		return &LeafColumn{
			Column:        c.column(),
			Type:          c.Type,
			Format:        c.Format,
			MaxLength:     c.MaxLength,
			MinLength:     c.MinLength,
			MinValue:      c.MinValue,
			MaxValue:      c.MaxValue,
			Choices:       c.Choices,
			Widget:        c.Widget,
			ErrorMessages: c.ErrorMessages,
		}
	}
}

// array resolves the inner field eagerly. An inner declaration that cannot
// build is kept as is so Check reports it.
func (c columnFile) array() *ArrayField {
	field := NewArrayField(c.Label)
	field.Column = c.column()
	if c.Button != "" {
		field.Button = c.Button
	}
	if c.DefaultCount != nil {
		field.DefaultCount = *c.DefaultCount
	}
	if c.MaxCount != nil {
		field.MaxCount = *c.MaxCount
	}
	if c.Field == nil {
		return field
	}
	inner := c.Field.declaration()
	built, err := inner.BuildField()
	if err != nil {
		field.Field = inner
		return field
	}
	field.Field = built
	return field
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("schema: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
