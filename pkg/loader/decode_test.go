package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/kvfold/internal/document"
)

func TestTryDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{name: "JSON object", input: `{"a": 1}`, want: map[string]any{"a": int64(1)}},
		{name: "JSON array", input: `[1, "x"]`, want: []any{int64(1), "x"}},
		{name: "YAML", input: "name: test\nport: 80", want: map[string]any{"name": "test", "port": int64(80)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TryDecode(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, document.ToInterface(got))
		})
	}

	t.Run("JWT", func(t *testing.T) {
		got, ok := TryDecode(validJWT)
		require.True(t, ok)
		assert.Equal(t, []string{"header", "payload", "signature"}, keysOf(got))
	})

	for _, plain := range []string{"", "hello world", "42", "true", "null"} {
		t.Run("scalar "+plain, func(t *testing.T) {
			got, ok := TryDecode(plain)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestRecursiveDecode(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		in := document.NewObject(
			document.Entry{Key: "plain", Value: document.NewString("hello")},
			document.Entry{Key: "json", Value: document.NewString(`{"inner": true}`)},
		)
		got := RecursiveDecode(in)
		assert.Equal(t, map[string]any{
			"plain": "hello",
			"json":  map[string]any{"inner": true},
		}, document.ToInterface(got))
		assert.Equal(t, []string{"plain", "json"}, keysOf(got))

		// The input is left untouched.
		raw, _ := in.Get("json")
		assert.Equal(t, document.String, raw.Kind())
	})

	t.Run("nested serialized strings", func(t *testing.T) {
		in := document.NewArray(document.NewString(`{"msg": "{\"deep\": [1]}"}`))
		got := RecursiveDecode(in)
		assert.Equal(t, []any{
			map[string]any{"msg": map[string]any{"deep": []any{int64(1)}}},
		}, document.ToInterface(got))
	})

	t.Run("scalars are returned as is", func(t *testing.T) {
		n := document.NewInt(7)
		assert.Same(t, n, RecursiveDecode(n))
		assert.Nil(t, RecursiveDecode(nil))
	})
}
