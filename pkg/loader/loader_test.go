package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/kvfold/internal/document"
)

func keysOf(v *document.Value) []string {
	var keys []string
	for _, e := range v.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}

func TestLoadJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  document.Kind
	}{
		{name: "single object", input: `{"name": "test", "value": 42}`, kind: document.Object},
		{name: "single array", input: `[1, 2, 3]`, kind: document.Array},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadData(tt.input)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.kind, got[0].Kind())
		})
	}

	t.Run("keeps key order", func(t *testing.T) {
		got, err := LoadData(`{"zeta": 1, "alpha": 2, "mid": 3}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, keysOf(got[0]))
	})

	t.Run("pretty printed document is not NDJSON", func(t *testing.T) {
		got, err := LoadData("[\n  {\"a\": 1},\n  {\"a\": 2}\n]")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].Len())
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := LoadData(`{"a": }`)
		assert.ErrorContains(t, err, "invalid JSON")
	})
}

func TestLoadYAML(t *testing.T) {
	got, err := LoadData("person:\n  name: Alice\n  age: 30\nversion: \"2\"")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]any{
		"person":  map[string]any{"name": "Alice", "age": int64(30)},
		"version": "2",
	}, document.ToInterface(got[0]))
	assert.Equal(t, []string{"person", "version"}, keysOf(got[0]))
}

func TestLoadMultiDocYAML(t *testing.T) {
	got, err := LoadData("---\nname: first\n---\nname: second\n")
	require.NoError(t, err)
	require.Len(t, got, 2)
	name, _ := got[1].Get("name")
	assert.Equal(t, "second", name.Str())
}

func TestLoadNDJSON(t *testing.T) {
	got, err := LoadData("{\"id\": 1}\n\n{\"id\": 2}\n{\"id\": 3}\n")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestLoadNDJSONWithPlainStrings(t *testing.T) {
	got, err := LoadData("{\"level\":\"debug\"}\nnot json\n{\"level\":\"info\"}")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, document.Object, got[0].Kind())
	assert.Equal(t, document.String, got[1].Kind())
	assert.Equal(t, "not json", got[1].Str())
}

func TestLoadNDJSONWithCarriageReturns(t *testing.T) {
	t.Run("bare carriage return separates lines", func(t *testing.T) {
		got, err := LoadData("{\"level\":\"debug\"}\r❌ error message\n{\"level\":\"info\"}")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "❌ error message", got[1].Str())
	})

	t.Run("Windows CRLF line endings", func(t *testing.T) {
		got, err := LoadData("{\"id\":1}\r\n{\"id\":2}\r\n{\"id\":3}")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestLoadTOML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{
			name:  "section",
			input: "[server]\nhost = \"localhost\"\nport = 8080",
			want:  map[string]any{"server": map[string]any{"host": "localhost", "port": int64(8080)}},
		},
		{
			name:  "array of tables",
			input: "[[users]]\nname = \"Alice\"\n\n[[users]]\nname = \"Bob\"",
			want: map[string]any{"users": []any{
				map[string]any{"name": "Alice"},
				map[string]any{"name": "Bob"},
			}},
		},
		{
			name:  "key-value only",
			input: "name = \"test\"\nvalue = 42",
			want:  map[string]any{"name": "test", "value": int64(42)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadData(tt.input)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, document.ToInterface(got[0]))
		})
	}

	t.Run("invalid TOML", func(t *testing.T) {
		_, err := LoadData("[server]\nhost = ")
		assert.ErrorContains(t, err, "invalid TOML")
	})
}

func TestIsLikelyTOML(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"[server]\nport = 1", true},
		{"[database.credentials]", true},
		{"[[items]]", true},
		{"a = 1\nb = 2", true},
		{"[1, 2, 3]", false},
		{`["a", "b"]`, false},
		{"name: test\nvalue: 42", false},
		{"# only a comment", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, isLikelyTOML(tt.input))
		})
	}
}

func TestLoadYAMLWithListItems(t *testing.T) {
	input := `linters:
  enable:
    - asciicheck
    - bodyclose
    - dogsled
    - errcheck`

	got, err := LoadData(input)
	require.NoError(t, err)
	require.Len(t, got, 1, "should parse as a single YAML document")
	assert.Equal(t, document.Object, got[0].Kind())
}

func TestLoadDataEmpty(t *testing.T) {
	_, err := LoadData("   \n  ")
	assert.ErrorContains(t, err, "empty input")
}

func TestLoadRoot(t *testing.T) {
	single, err := LoadRoot(`{"a": 1}`)
	require.NoError(t, err)
	assert.Equal(t, document.Object, single.Kind())

	multi, err := LoadRoot("{\"a\": 1}\n{\"a\": 2}")
	require.NoError(t, err)
	assert.Equal(t, document.Array, multi.Kind())
	assert.Equal(t, 2, multi.Len())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"k": "v"}`), 0o600))

	root, err := LoadFile(path)
	require.NoError(t, err)
	v, ok := root.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v.Str())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadObject(t *testing.T) {
	type sample struct {
		Name string `json:"name"`
		Kind string `json:"kind,omitempty"`
		Size int    `json:"size"`
	}

	t.Run("nil interface", func(t *testing.T) {
		_, err := LoadObject(nil)
		assert.ErrorContains(t, err, "nil")
	})

	t.Run("typed nil pointer", func(t *testing.T) {
		var s *sample
		_, err := LoadObject(s)
		assert.Error(t, err)
	})

	t.Run("string delegates to loader", func(t *testing.T) {
		root, err := LoadObject("name: test")
		require.NoError(t, err)
		assert.Equal(t, document.Object, root.Kind())
	})

	t.Run("bytes delegates to loader", func(t *testing.T) {
		root, err := LoadObject([]byte(`{"id":1}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, keysOf(root))
	})

	t.Run("struct follows field order and tags", func(t *testing.T) {
		root, err := LoadObject(&sample{Name: "bob", Size: 3})
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "size"}, keysOf(root))
	})

	t.Run("slice of structs", func(t *testing.T) {
		root, err := LoadObject([]sample{{Name: "a"}, {Name: "b"}})
		require.NoError(t, err)
		require.Equal(t, 2, root.Len())
		first, _ := root.Index(0)
		name, _ := first.Get("name")
		assert.Equal(t, "a", name.Str())
	})

	t.Run("map keys are sorted", func(t *testing.T) {
		root, err := LoadObject(map[string]any{"b": 1, "a": 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, keysOf(root))
	})

	t.Run("document value passes through", func(t *testing.T) {
		v := document.NewString("x")
		root, err := LoadObject(v)
		require.NoError(t, err)
		assert.Same(t, v, root)
	})

	t.Run("scalar", func(t *testing.T) {
		root, err := LoadObject(42)
		require.NoError(t, err)
		assert.Equal(t, "42", root.Literal())
	})
}

func TestLoadCSV(t *testing.T) {
	root, err := LoadCSV([]byte("name,size,kind\nalpha,1,x\nbeta,2\n"))
	require.NoError(t, err)
	require.Equal(t, 2, root.Len())

	first, _ := root.Index(0)
	assert.Equal(t, []string{"name", "size", "kind"}, keysOf(first))
	assert.Equal(t, map[string]any{"name": "beta", "size": "2", "kind": ""}, document.ToInterface(root.Items()[1]))

	empty, err := LoadCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, document.Array, empty.Kind())
	assert.Equal(t, 0, empty.Len())

	_, err = LoadCSV([]byte("a,\"b\n"))
	assert.ErrorContains(t, err, "invalid CSV")
}

func TestLoadFileHonorsCSVExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.CSV")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o600))

	root, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, document.Array, root.Kind())
	row, _ := root.Index(0)
	assert.Equal(t, []string{"a", "b"}, keysOf(row))
}
