package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/kvfold/internal/document"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid limit only",
			cfg:     Config{Limit: 10},
			wantErr: false,
		},
		{
			name:    "valid offset only",
			cfg:     Config{Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid limit and offset",
			cfg:     Config{Limit: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid tail only",
			cfg:     Config{Tail: 10},
			wantErr: false,
		},
		{
			name:    "tail ignores offset (valid)",
			cfg:     Config{Tail: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "limit and tail mutually exclusive",
			cfg:     Config{Limit: 10, Tail: 5},
			wantErr: true,
			errMsg:  "mutually exclusive",
		},
		{
			name:    "negative limit invalid",
			cfg:     Config{Limit: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative offset invalid",
			cfg:     Config{Offset: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative tail invalid",
			cfg:     Config{Tail: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "zero values valid",
			cfg:     Config{Limit: 0, Offset: 0, Tail: 0},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigIsActive(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantBool bool
	}{
		{
			name:     "no flags set",
			cfg:      Config{},
			wantBool: false,
		},
		{
			name:     "limit set",
			cfg:      Config{Limit: 10},
			wantBool: true,
		},
		{
			name:     "offset set",
			cfg:      Config{Offset: 5},
			wantBool: true,
		},
		{
			name:     "tail set",
			cfg:      Config{Tail: 10},
			wantBool: true,
		},
		{
			name:     "all flags set",
			cfg:      Config{Limit: 10, Offset: 5, Tail: 0}, // tail not really set
			wantBool: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.IsActive()
			assert.Equal(t, tt.wantBool, got)
		})
	}
}

func mustDoc(t *testing.T, s string) *document.Value {
	t.Helper()
	v, err := document.ParseJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func TestApplyToArray(t *testing.T) {
	arr := mustDoc(t, `[1, 2, 3, 4, 5, 6, 7, 8, 9, 10]`)

	tests := []struct {
		name string
		cfg  Config
		want []any
	}{
		{
			name: "limit only",
			cfg:  Config{Limit: 3},
			want: []any{int64(1), int64(2), int64(3)},
		},
		{
			name: "offset only",
			cfg:  Config{Offset: 7},
			want: []any{int64(8), int64(9), int64(10)},
		},
		{
			name: "limit and offset",
			cfg:  Config{Limit: 3, Offset: 2},
			want: []any{int64(3), int64(4), int64(5)},
		},
		{
			name: "tail only",
			cfg:  Config{Tail: 3},
			want: []any{int64(8), int64(9), int64(10)},
		},
		{
			name: "offset larger than array",
			cfg:  Config{Offset: 20},
			want: []any{},
		},
		{
			name: "limit larger than remaining",
			cfg:  Config{Limit: 100, Offset: 8},
			want: []any{int64(9), int64(10)},
		},
		{
			name: "tail larger than array",
			cfg:  Config{Tail: 100},
			want: document.ToInterface(arr).([]any),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.cfg.Apply(arr)
			assert.Equal(t, document.Array, result.Kind())
			assert.Equal(t, tt.want, document.ToInterface(result))
		})
	}

	assert.Equal(t, 10, arr.Len(), "the input is not modified")
}

func TestApplyToObjectKeepsDocumentOrder(t *testing.T) {
	obj := mustDoc(t, `{"e": 5, "a": 1, "d": 4, "b": 2, "c": 3}`)

	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{name: "limit only", cfg: Config{Limit: 2}, want: []string{"e", "a"}},
		{name: "offset and limit", cfg: Config{Offset: 1, Limit: 2}, want: []string{"a", "d"}},
		{name: "tail", cfg: Config{Tail: 2}, want: []string{"b", "c"}},
		{name: "offset past end", cfg: Config{Offset: 9}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.cfg.Apply(obj)
			require.Equal(t, document.Object, result.Kind())
			var keys []string
			for _, e := range result.Entries() {
				keys = append(keys, e.Key)
			}
			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestApplyToScalar(t *testing.T) {
	for _, s := range []string{`"text"`, `42`, `true`, `null`} {
		v := mustDoc(t, s)
		assert.Same(t, v, Config{Limit: 1}.Apply(v), s)
	}
}

func TestApplyInactiveReturnsInput(t *testing.T) {
	arr := mustDoc(t, `[1, 2]`)
	assert.Same(t, arr, Config{}.Apply(arr))
	assert.Same(t, arr, Config{Tail: 0}.Apply(arr))
}

func TestTailIgnoresOffset(t *testing.T) {
	arr := mustDoc(t, `[1, 2, 3, 4, 5, 6, 7, 8, 9, 10]`)
	result := Config{Tail: 3, Offset: 5}.Apply(arr)
	assert.Equal(t, []any{int64(8), int64(9), int64(10)}, document.ToInterface(result))
}
