package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys simulates startup keypresses (Vim-like tokens and literal text).
// It mutates the provided model in place and reports whether a key asked to quit;
// the remaining keys are dropped in that case.
func ApplyStartupKeys(m *Model, keys []string) bool {
	if m == nil {
		return false
	}
	for _, msg := range StartupMessages(keys) {
		if m.send(msg) {
			return true
		}
	}
	return false
}

// send updates m with msg and follows the returned commands synchronously.
// It reports whether the program was asked to quit.
func (m *Model) send(msg tea.Msg) bool {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(next)
		if cmd == nil {
			continue
		}
		switch out := cmd().(type) {
		case nil:
		case tea.QuitMsg:
			return true
		default:
			queue = append(queue, out)
		}
	}
	return false
}

// StartupMessages parses startup key tokens into messages.
func StartupMessages(keys []string) []tea.Msg {
	var msgs []tea.Msg
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		// Leading backslash forces literal text (e.g., "\\<up>").
		if strings.HasPrefix(token, `\`) {
			msgs = append(msgs, literalKeys(strings.TrimPrefix(token, `\`))...)
			continue
		}
		for _, segment := range parseTokenSegments(token) {
			if !segment.isVimKey {
				msgs = append(msgs, literalKeys(segment.text)...)
				continue
			}
			if msg, ok := keyMsgFromToken(segment.text); ok {
				msgs = append(msgs, msg)
			}
		}
	}
	return msgs
}

func literalKeys(text string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(text))
	for _, r := range text {
		if r == ' ' {
			msgs = append(msgs, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
			continue
		}
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}

// tokenSegment represents a parsed segment of a token (either a vim-style key or literal text)
type tokenSegment struct {
	text     string
	isVimKey bool
}

// parseTokenSegments splits a token into segments of vim-style keys and literal text.
// Example: "<Down>gg" -> [segment{text: "<Down>", isVimKey: true}, segment{text: "gg", isVimKey: false}]
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token

	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}

		endIdx := strings.Index(remaining[startIdx:], ">")
		if endIdx == -1 {
			// No closing >, treat rest as literal text
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}

		segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+endIdx+1], isVimKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}

	return segments
}

// keyMsgFromToken parses a Vim-like token into a message.
// Examples: "<Esc>", "<CR>", "<Space>", "<PgDn>", "<WheelDown>".
func keyMsgFromToken(token string) (tea.Msg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return nil, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">")
	switch strings.ToLower(inner) {
	case "esc", "c-[", "escape":
		return tea.KeyPressMsg{Code: tea.KeyEscape}, true
	case "cr", "enter", "return":
		return tea.KeyPressMsg{Code: tea.KeyEnter}, true
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, true
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}, true
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}, true
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}, true
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}, true
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}, true
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}, true
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}, true
	case "pgup", "pageup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}, true
	case "pgdn", "pgdown", "pagedown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}, true
	case "wheelup":
		return tea.MouseWheelMsg{Button: tea.MouseWheelUp}, true
	case "wheeldown":
		return tea.MouseWheelMsg{Button: tea.MouseWheelDown}, true
	case "lt":
		return tea.KeyPressMsg{Code: '<', Text: "<"}, true
	}
	return nil, false
}
