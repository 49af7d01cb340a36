package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalDeviceNames(t *testing.T) {
	in, out := terminalDeviceNames("windows")
	assert.Equal(t, "CONIN$", in)
	assert.Equal(t, "CONOUT$", out)

	in, out = terminalDeviceNames("linux")
	assert.Equal(t, "/dev/tty", in)
	assert.Equal(t, "/dev/tty", out)
}

func stubStdin(t *testing.T, piped bool) {
	t.Helper()
	orig := stdinIsPiped
	stdinIsPiped = func() bool { return piped }
	t.Cleanup(func() { stdinIsPiped = orig })
}

func TestProgramOptionsForTerminalStdin(t *testing.T) {
	stubStdin(t, false)
	opts, cleanup := getProgramOptions()
	assert.Nil(t, opts)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestProgramOptionsWithoutTTY(t *testing.T) {
	stubStdin(t, true)
	orig := openTerminalIOFn
	openTerminalIOFn = func() (*os.File, *os.File, error) { return nil, nil, errors.New("no tty") }
	t.Cleanup(func() { openTerminalIOFn = orig })

	opts, cleanup := getProgramOptions()
	assert.Nil(t, opts)
	cleanup()
}

func TestProgramOptionsReopenTTY(t *testing.T) {
	stubStdin(t, true)
	dir := t.TempDir()
	in, err := os.Create(filepath.Join(dir, "in"))
	require.NoError(t, err)
	out, err := os.Create(filepath.Join(dir, "out"))
	require.NoError(t, err)

	orig := openTerminalIOFn
	openTerminalIOFn = func() (*os.File, *os.File, error) { return in, out, nil }
	t.Cleanup(func() { openTerminalIOFn = orig })

	opts, cleanup := getProgramOptions()
	assert.Len(t, opts, 4, "context, input, output and resize watcher")
	cleanup()

	assert.ErrorIs(t, in.Close(), os.ErrClosed)
	assert.ErrorIs(t, out.Close(), os.ErrClosed)
}

type fakeTicker struct{ ch chan time.Time }

func (f fakeTicker) C() <-chan time.Time { return f.ch }
func (f fakeTicker) Stop() {}

func TestResizeWatcherSendsChangedSizes(t *testing.T) {
	ticks := make(chan time.Time)
	sent := make(chan tea.WindowSizeMsg, 4)

	var mu sync.Mutex
	sizes := [][2]int{{100, 30}, {100, 30}, {120, 40}}

	origTicker, origSize, origSend := newResizeTicker, termGetSize, sendWindowSize
	newResizeTicker = func(time.Duration) resizeTicker { return fakeTicker{ch: ticks} }
	termGetSize = func(int) (int, int, error) {
		mu.Lock()
		defer mu.Unlock()
		s := sizes[0]
		if len(sizes) > 1 {
			sizes = sizes[1:]
		}
		return s[0], s[1], nil
	}
	sendWindowSize = func(_ *tea.Program, msg tea.WindowSizeMsg) { sent <- msg }

	f, err := os.Create(filepath.Join(t.TempDir(), "tty"))
	require.NoError(t, err)
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	withTTYResizeWatcher(ctx, f)(nil)

	for range 3 {
		ticks <- time.Now()
	}
	assert.Equal(t, tea.WindowSizeMsg{Width: 100, Height: 30}, receive(t, sent))
	assert.Equal(t, tea.WindowSizeMsg{Width: 120, Height: 40}, receive(t, sent))
	assert.Empty(t, sent, "unchanged sizes are not sent")

	cancel()
	t.Cleanup(func() { newResizeTicker, termGetSize, sendWindowSize = origTicker, origSize, origSend })
}

func receive(t *testing.T, ch <-chan tea.WindowSizeMsg) tea.WindowSizeMsg {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no window size sent")
		return tea.WindowSizeMsg{}
	}
}

func TestResizeWatcherIgnoresMissingOutput(t *testing.T) {
	called := false
	orig := newResizeTicker
	newResizeTicker = func(d time.Duration) resizeTicker {
		called = true
		return orig(d)
	}
	t.Cleanup(func() { newResizeTicker = orig })

	withTTYResizeWatcher(context.Background(), nil)(nil)
	assert.False(t, called)
}
