package limiter

import (
	"fmt"
	"slices"

	"github.com/oakwood-commons/kvfold/internal/document"
)

// Config holds the record-limiting parameters.
type Config struct {
	Limit  int // Show only this many records (0 = unlimited)
	Offset int // Skip the first N records (0 = no skip)
	Tail   int // Show only the last N records (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}

	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}

	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Apply returns a copy of a root array or object reduced to the configured
// window of records. Object entries keep their document order. Scalars and
// inactive configs return v unchanged.
func (c Config) Apply(v *document.Value) *document.Value {
	if !c.IsActive() {
		return v
	}

	switch v.Kind() {
	case document.Array:
		start, end := c.window(v.Len())
		return document.NewArray(slices.Clone(v.Items()[start:end])...)
	case document.Object:
		start, end := c.window(v.Len())
		return document.NewObject(v.Entries()[start:end]...)
	case document.String, document.Number, document.Bool, document.Null, document.Unsupported:
		return v
	}
	return v
}

// window returns the [start, end) range of records to keep out of length.
func (c Config) window(length int) (int, int) {
	// Handle --tail (show last N records)
	if c.Tail > 0 {
		return max(0, length-c.Tail), length
	}

	// Handle --offset and --limit
	start := min(c.Offset, length)
	end := length
	if c.Limit > 0 {
		end = min(start+c.Limit, length)
	}
	return start, end
}
