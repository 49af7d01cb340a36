package cel

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"github.com/oakwood-commons/kvfold/internal/document"
)

func mustDoc(t *testing.T, s string) *document.Value {
	t.Helper()
	v, err := document.ParseJSON([]byte(s))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	return v
}

func newEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	return eval
}

func TestNewEvaluator_CreatesValidEnvironment(t *testing.T) {
	eval := newEvaluator(t)
	if eval.Environment() == nil {
		t.Fatal("Environment returned nil")
	}
}

func TestEvaluate_SimpleExpressions(t *testing.T) {
	eval := newEvaluator(t)

	tests := []struct {
		name     string
		expr     string
		data     string
		expected any
	}{
		{"access field", "_.name", `{"name": "test"}`, "test"},
		{"access number", "_.count", `{"count": 42}`, int64(42)},
		{"float", "_.ratio * 2.0", `{"ratio": 0.25}`, 0.5},
		{"array index", "_[0]", `["first", "second"]`, "first"},
		{"boolean", "_.active", `{"active": true}`, true},
		{"nested field", "_.user.email", `{"user": {"email": "test@example.com"}}`, "test@example.com"},
		{"null", "_.missing", `{"missing": null}`, nil},
		{"size", "size(_)", `[1, 2, 3]`, int64(3)},
		{"string extension", "_.name.upperAscii()", `{"name": "abc"}`, "ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := eval.Evaluate(tt.expr, mustDoc(t, tt.data))
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if got := document.ToInterface(result); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %#v, got %#v", tt.expected, got)
			}
		})
	}
}

func TestEvaluate_FilterAndMap(t *testing.T) {
	eval := newEvaluator(t)
	doc := mustDoc(t, `{"items": [
		{"name": "a", "available": true, "price": 3},
		{"name": "b", "available": false, "price": 5},
		{"name": "c", "available": true, "price": 7}
	]}`)

	result, err := eval.Evaluate("_.items.filter(x, x.available).map(x, x.name)", doc)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if got, want := document.ToInterface(result), []any{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	result, err = eval.Evaluate("_.items.filter(x, x.price > 100)", doc)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if result.Kind() != document.Array || result.Len() != 0 {
		t.Errorf("expected an empty array, got %v with %d items", result.Kind(), result.Len())
	}
}

func TestEvaluate_ProjectedObjectsHaveSortedKeys(t *testing.T) {
	eval := newEvaluator(t)
	result, err := eval.Evaluate(`{"zeta": _.a, "alpha": [_.a, 2], "mid": {"k": true}}`, mustDoc(t, `{"a": 1}`))
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	var keys []string
	for _, e := range result.Entries() {
		keys = append(keys, e.Key)
	}
	if want := []string{"alpha", "mid", "zeta"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("expected keys %v, got %v", want, keys)
	}
	want := map[string]any{
		"zeta":  int64(1),
		"alpha": []any{int64(1), int64(2)},
		"mid":   map[string]any{"k": true},
	}
	if got := document.ToInterface(result); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestEvaluate_IdentityKeepsValues(t *testing.T) {
	eval := newEvaluator(t)
	doc := mustDoc(t, `{"b": [1, "x", null], "a": {"c": false}}`)
	result, err := eval.Evaluate("_", doc)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if got, want := document.ToInterface(result), document.ToInterface(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestEvaluate_ErrorHandling(t *testing.T) {
	eval := newEvaluator(t)
	doc := mustDoc(t, `{"a": 1}`)

	tests := []struct {
		name   string
		expr   string
		prefix string
	}{
		{"syntax", "_.a +", "compilation error"},
		{"undeclared", "nope.a", "compilation error"},
		{"missing key", "_.missing", "eval error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eval.Evaluate(tt.expr, doc)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.HasPrefix(err.Error(), tt.prefix) {
				t.Errorf("expected %q prefix, got %v", tt.prefix, err)
			}
		})
	}
}

func TestToGo_PrimitiveTypes(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"bool", types.True, true},
		{"int", types.Int(-3), int64(-3)},
		{"uint", types.Uint(3), uint64(3)},
		{"double", types.Double(1.5), 1.5},
		{"string", types.String("s"), "s"},
		{"bytes", types.Bytes("b"), []byte("b")},
		{"null", types.NullValue, nil},
		{"timestamp", types.Timestamp{Time: ts}, ts},
		{"duration", types.Duration{Duration: 90 * time.Second}, "1m30s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToGo(types.DefaultTypeAdapter.NativeToValue(tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
	if ToGo(nil) != nil {
		t.Error("expected nil for a nil value")
	}
}

func TestToGo_MapWithNonStringKeys(t *testing.T) {
	val := types.DefaultTypeAdapter.NativeToValue(map[int64]string{1: "one"})
	want := map[string]any{"1": "one"}
	if got := ToGo(val); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDiscoverFunctionsIncludesExtensions(t *testing.T) {
	funcs, err := DiscoverFunctions()
	if err != nil {
		t.Fatalf("DiscoverFunctions error: %v", err)
	}
	if len(funcs) < 10 {
		t.Fatalf("expected at least 10 CEL functions, got %d: %v", len(funcs), funcs)
	}
	joined := strings.Join(funcs, "\n")
	for _, want := range []string{"upperAscii() - string.upperAscii() -> string", "filter() - macro"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in discovered functions", want)
		}
	}
	for _, f := range funcs {
		if strings.HasPrefix(f, "@") || strings.HasPrefix(f, "_") {
			t.Errorf("internal name leaked into function list: %q", f)
		}
	}
}

func TestDiscoverFunctionsFromEnv_WithCustomFunctions(t *testing.T) {
	eval, err := NewEvaluator(cel.Function("shout",
		cel.Overload("shout_string", []*cel.Type{cel.StringType}, cel.StringType),
	))
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	funcs := DiscoverFunctionsFromEnv(eval.Environment())
	found := false
	for _, f := range funcs {
		if f == "shout() - shout(string) -> string" {
			found = true
		}
	}
	if !found {
		t.Errorf("custom function missing from %v", funcs)
	}
}

func TestIsOperator_FiltersInternalNames(t *testing.T) {
	for _, name := range []string{"_+_", "_[_]", "!_", "-_", "@in", "_==_"} {
		if !isOperator(name) {
			t.Errorf("expected %q to be an operator", name)
		}
	}
	for _, name := range []string{"size", "filter", "upperAscii"} {
		if isOperator(name) {
			t.Errorf("expected %q not to be an operator", name)
		}
	}
}
