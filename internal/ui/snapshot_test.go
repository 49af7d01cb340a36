package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotConfig(keys ...string) SnapshotConfig {
	return SnapshotConfig{Options: testOptions(false), StartKeys: keys}
}

func TestRenderSnapshotHasWindowHeight(t *testing.T) {
	out := RenderSnapshot(parseDoc(t, sampleDoc), snapshotConfig())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "{", strings.TrimRight(ansi.Strip(lines[0]), " "))
	assert.Equal(t, "_  depth 1/1", strings.TrimRight(ansi.Strip(lines[4]), " "))
	assert.Equal(t, strings.Repeat(" ", 40), lines[9])
}

func TestRenderSnapshotReplaysKeys(t *testing.T) {
	out := ansi.Strip(RenderSnapshot(parseDoc(t, sampleDoc), snapshotConfig("+", "<Down>")))
	assert.Contains(t, out, "    1,")
	assert.Contains(t, out, "_.a  depth 2/2")
}

func TestRenderSnapshotIsDeterministic(t *testing.T) {
	doc := parseDoc(t, `[{"name": "a", "size": 1}, {"name": "b"}]`)
	cfg := snapshotConfig("<Right><CR>", "gg")
	first := RenderSnapshot(doc, cfg)
	assert.Equal(t, first, RenderSnapshot(doc, cfg))
	assert.Contains(t, ansi.Strip(first), "(array view)")
}

func TestRenderSnapshotStopsAtQuit(t *testing.T) {
	out := ansi.Strip(RenderSnapshot(parseDoc(t, sampleDoc), snapshotConfig("q", "+")))
	assert.Contains(t, out, `"b": [...]`, "keys after quit are dropped")
}

func TestStartupMessages(t *testing.T) {
	msgs := StartupMessages([]string{"<Down>gg", `\<up>`, "<Space>", "<WheelDown>", "<bogus>", "  ", "a b"})
	assert.Equal(t, []tea.Msg{
		tea.KeyPressMsg{Code: tea.KeyDown},
		tea.KeyPressMsg{Code: 'g', Text: "g"},
		tea.KeyPressMsg{Code: 'g', Text: "g"},
		tea.KeyPressMsg{Code: '<', Text: "<"},
		tea.KeyPressMsg{Code: 'u', Text: "u"},
		tea.KeyPressMsg{Code: 'p', Text: "p"},
		tea.KeyPressMsg{Code: '>', Text: ">"},
		tea.KeyPressMsg{Code: tea.KeySpace, Text: " "},
		tea.MouseWheelMsg{Button: tea.MouseWheelDown},
		tea.KeyPressMsg{Code: 'a', Text: "a"},
		tea.KeyPressMsg{Code: tea.KeySpace, Text: " "},
		tea.KeyPressMsg{Code: 'b', Text: "b"},
	}, msgs)
}

func TestParseTokenSegments(t *testing.T) {
	tests := []struct {
		token string
		want  []tokenSegment
	}{
		{"gg", []tokenSegment{{text: "gg"}}},
		{"<End>", []tokenSegment{{text: "<End>", isVimKey: true}}},
		{"+<Down>-", []tokenSegment{{text: "+"}, {text: "<Down>", isVimKey: true}, {text: "-"}}},
		{"a<b", []tokenSegment{{text: "a"}, {text: "<b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTokenSegments(tt.token))
		})
	}
}

func TestKeyMsgFromToken(t *testing.T) {
	tests := map[string]tea.Msg{
		"<Esc>":      tea.KeyPressMsg{Code: tea.KeyEscape},
		"<CR>":       tea.KeyPressMsg{Code: tea.KeyEnter},
		"<PgDn>":     tea.KeyPressMsg{Code: tea.KeyPgDown},
		"<PageUp>":   tea.KeyPressMsg{Code: tea.KeyPgUp},
		"<Home>":     tea.KeyPressMsg{Code: tea.KeyHome},
		"<WheelUp>":  tea.MouseWheelMsg{Button: tea.MouseWheelUp},
		"<lt>":       tea.KeyPressMsg{Code: '<', Text: "<"},
		"<Left>":     tea.KeyPressMsg{Code: tea.KeyLeft},
		"<F1>":       nil,
		"plain text": nil,
	}
	for token, want := range tests {
		t.Run(token, func(t *testing.T) {
			got, ok := keyMsgFromToken(token)
			assert.Equal(t, want != nil, ok)
			assert.Equal(t, want, got)
		})
	}
}
