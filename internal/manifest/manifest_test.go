package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input       string
		wantKind    Kind
		wantEntries int
		wantVersion string
		wantErr     string
	}{
		"single command manifest": {
			input:       `{"name":"review","version":"1.2.0","entry":"prompt.md"}`,
			wantKind:    Single,
			wantVersion: "1.2.0",
		},
		"empty object is single": {
			input:    `{}`,
			wantKind: Single,
		},
		"commands that is not an array is single": {
			input:    `{"commands":"fix"}`,
			wantKind: Single,
		},
		"null commands is single": {
			input:    `{"commands":null}`,
			wantKind: Single,
		},
		"numeric version on single": {
			input:       `{"version":1}`,
			wantKind:    Single,
			wantVersion: "1",
		},
		"boolean version is ignored on single": {
			input:    `{"version":true}`,
			wantKind: Single,
		},
		"object id": {
			input:   `{"commands":[{"id":{"x":1},"entry":"a.md"}]}`,
			wantErr: "expected a string or a number",
		},
		"multi command manifest": {
			input: `{"commands":[
				{"id":"a","name":"A","version":"1.0","description":"d","entry":"a.md","input_type":"text"},
				{"id":"b","name":"B","version":"1.0","description":"d","entry":"prompts/b.md","input_type":"none"}
			]}`,
			wantKind:    Multi,
			wantEntries: 2,
		},
		"empty commands array": {
			input:    `{"commands":[]}`,
			wantKind: Multi,
		},
		"invalid json": {
			input:   `{"commands":`,
			wantErr: "invalid command manifest",
		},
		"top level array": {
			input:   `[]`,
			wantErr: "invalid command manifest",
		},
		"top level null": {
			input:   `null`,
			wantErr: "must be a JSON object",
		},
		"entry without id": {
			input:   `{"commands":[{"entry":"a.md"}]}`,
			wantErr: "commands[0]: invalid command manifest: id is required",
		},
		"entry without entry file": {
			input:   `{"commands":[{"id":"a"},{"id":"b"}]}`,
			wantErr: "entry is required",
		},
		"id with separator": {
			input:   `{"commands":[{"id":"../x","entry":"a.md"}]}`,
			wantErr: "must not contain path separators",
		},
		"entry escaping template directory": {
			input:   `{"commands":[{"id":"a","entry":"../../etc/passwd"}]}`,
			wantErr: "relative path inside the template directory",
		},
		"absolute entry": {
			input:   `{"commands":[{"id":"a","entry":"/etc/passwd"}]}`,
			wantErr: "relative path inside the template directory",
		},
		"wrong entry field type": {
			input:   `{"commands":[{"id":"a","entry":42}]}`,
			wantErr: "invalid command manifest: commands",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tpl, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalid)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, tpl.Kind)
			assert.Len(t, tpl.Entries, tt.wantEntries)
			assert.Equal(t, tt.wantVersion, tpl.Version)
		})
	}
}

func TestParse_EntryFields(t *testing.T) {
	t.Parallel()

	tpl, err := Parse([]byte(`{"commands":[{"id":"fix","name":"Fix","version":"1.0","description":"d","entry":"fix.md","input_type":"text"}]}`))
	require.NoError(t, err)
	require.Len(t, tpl.Entries, 1)

	assert.Equal(t, Entry{
		ID:          "fix",
		Name:        "Fix",
		Version:     "1.0",
		Description: "d",
		Entry:       "fix.md",
		InputType:   "text",
	}, tpl.Entries[0])
}

func TestDescriptor_Marshal(t *testing.T) {
	t.Parallel()

	entry := Entry{ID: "fix", Name: "Fix", Version: "1.0", Description: "d", Entry: "fix.md", InputType: "text"}
	data, err := entry.Descriptor().Marshal()
	require.NoError(t, err)

	want := "{\n" +
		"  \"name\": \"Fix\",\n" +
		"  \"version\": \"1.0\",\n" +
		"  \"description\": \"d\",\n" +
		"  \"entry\": \"prompt.md\",\n" +
		"  \"input_type\": \"text\"\n" +
		"}"
	assert.Equal(t, want, string(data))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]string{
		"name":        "Fix",
		"version":     "1.0",
		"description": "d",
		"entry":       "prompt.md",
		"input_type":  "text",
	}, decoded)
}

func TestDescriptor_MarshalOmitsAbsentFields(t *testing.T) {
	t.Parallel()

	data, err := Entry{ID: "x", Entry: "x.md"}.Descriptor().Marshal()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"entry\": \"prompt.md\"\n}", string(data))
}

func TestDescriptor_MarshalNoHTMLEscape(t *testing.T) {
	t.Parallel()

	data, err := Entry{ID: "x", Entry: "x.md", Description: "a <b> & c"}.Descriptor().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a <b> & c"`)
}

func TestParse_NumericEntryFields(t *testing.T) {
	t.Parallel()

	tpl, err := Parse([]byte(`{"commands":[{"id":2,"name":"Two","version":1,"entry":"two.md"},{"id":"c","version":1.5,"entry":"c.md"}]}`))
	require.NoError(t, err)
	require.Len(t, tpl.Entries, 2)

	assert.Equal(t, Entry{ID: "2", Name: "Two", Version: "1", Entry: "two.md"}, tpl.Entries[0])
	assert.Equal(t, "1.5", tpl.Entries[1].Version)
	assert.JSONEq(t, `{"name":"Two","version":"1","entry":"prompt.md"}`, mustMarshal(t, tpl.Entries[0].Descriptor()))
}

func mustMarshal(t *testing.T, d Descriptor) string {
	t.Helper()
	data, err := d.Marshal()
	require.NoError(t, err)
	return string(data)
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	v, err := ParseVersion([]byte(`{"name":"Fix","version":"2.0.1","entry":"prompt.md"}`))
	require.NoError(t, err)
	assert.Equal(t, "2.0.1", v)

	v, err = ParseVersion([]byte(`{"name":"Fix"}`))
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = ParseVersion([]byte(`{"version":3}`))
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	_, err = ParseVersion([]byte(`oops`))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestKind_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "single", Single.String())
	assert.Equal(t, "multi", Multi.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
