package ui

import (
	"strings"

	"github.com/oakwood-commons/kvfold/internal/document"
)

// SnapshotConfig configures snapshot rendering.
type SnapshotConfig struct {
	Options
	StartKeys []string
}

// RenderSnapshot renders one frame of the viewer after replaying the
// startup keys. The output has exactly Height lines.
func RenderSnapshot(doc *document.Value, cfg SnapshotConfig) string {
	m := NewModel(doc, cfg.Options)
	ApplyStartupKeys(m, cfg.StartKeys)
	return padSnapshotHeight(m.Render(), m.WinHeight, m.WinWidth)
}

func padSnapshotHeight(view string, height, width int) string {
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if height <= 0 || len(lines) >= height {
		return strings.Join(lines, "\n")
	}
	padLine := " "
	if width > 1 {
		padLine = strings.Repeat(" ", width)
	}
	for len(lines) < height {
		lines = append(lines, padLine)
	}
	return strings.Join(lines, "\n")
}
