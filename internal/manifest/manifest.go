// Package manifest parses command.json files found in command template
// directories. A manifest either describes a single command, whose directory
// is installed as-is, or lists several commands under a "commands" array,
// each of which is expanded into its own installed command.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// FileName is the manifest file name inside a command template directory.
	FileName = "command.json"

	// PromptFile is the prompt body file name of an expanded command.
	PromptFile = "prompt.md"
)

// ErrInvalid is wrapped by every manifest parsing or validation failure.
var ErrInvalid = errors.New("invalid command manifest")

// Kind distinguishes the two manifest shapes.
type Kind int

const (
	// Single manifests install their template directory verbatim.
	Single Kind = iota
	// Multi manifests expand each entry of "commands" into its own command.
	Multi
)

// String returns the name of the manifest shape.
func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Multi:
		return "multi"
	default:
		return "unknown"
	}
}

// Template is a parsed command.json.
type Template struct {
	Kind Kind
	// Name and Version are read from the top level of a single-command
	// manifest when present as strings or numbers.
	Name    string
	Version string
	// Entries holds the commands of a multi-command manifest.
	Entries []Entry
}

// Entry is one command of a multi-command manifest.
type Entry struct {
	ID          string `json:"id" validate:"required,excludesall=/\\"`
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Entry       string `json:"entry" validate:"required,localpath"`
	InputType   string `json:"input_type,omitempty"`
}

// UnmarshalJSON accepts numbers as well as strings for id and version.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var aux struct {
		plain
		ID      scalar `json:"id"`
		Version scalar `json:"version"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Entry(aux.plain)
	e.ID = string(aux.ID)
	e.Version = string(aux.Version)
	return nil
}

// scalar is a JSON string or number, kept as its text.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = scalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or a number, got %s", data)
	}
	*s = scalar(n.String())
	return nil
}

// Descriptor is the command.json written for an expanded command.
type Descriptor struct {
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Entry       string `json:"entry"`
	InputType   string `json:"input_type,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("localpath", func(fl validator.FieldLevel) bool {
		return filepath.IsLocal(filepath.FromSlash(fl.Field().String()))
	})
	return v
}

// Parse decodes a command.json document. A top-level "commands" key holding
// an array selects the multi-command shape; anything else is single-command.
func Parse(data []byte) (*Template, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: manifest must be a JSON object", ErrInvalid)
	}

	if raw, ok := top["commands"]; ok && isArray(raw) {
		var entries []Entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("%w: commands: %v", ErrInvalid, err)
		}
		for i := range entries {
			if err := entries[i].Validate(); err != nil {
				return nil, fmt.Errorf("commands[%d]: %w", i, err)
			}
		}
		return &Template{Kind: Multi, Entries: entries}, nil
	}

	return &Template{
		Kind:    Single,
		Name:    stringField(top, "name"),
		Version: stringField(top, "version"),
	}, nil
}

// Validate checks the fields the installer relies on: a path-safe id and an
// entry file inside the template directory.
func (e Entry) Validate() error {
	if err := validate.Struct(e); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalid, describe(fieldErrs[0]))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Descriptor returns the command.json written for this entry; its prompt is
// always installed as prompt.md.
func (e Entry) Descriptor() Descriptor {
	return Descriptor{
		Name:        e.Name,
		Version:     e.Version,
		Description: e.Description,
		Entry:       PromptFile,
		InputType:   e.InputType,
	}
}

// Marshal encodes the descriptor with two-space indentation and without
// HTML escaping.
func (d Descriptor) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding command descriptor: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ParseVersion extracts the top-level version of an installed command.json of
// either shape. It returns an empty string when none is declared.
func ParseVersion(data []byte) (string, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return stringField(top, "version"), nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func stringField(top map[string]json.RawMessage, key string) string {
	raw, ok := top[key]
	if !ok {
		return ""
	}
	var s scalar
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return string(s)
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "excludesall":
		return fmt.Sprintf("%s %q must not contain path separators", field, fe.Value())
	case "localpath":
		return fmt.Sprintf("%s %q must be a relative path inside the template directory", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
