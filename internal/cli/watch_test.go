package cli

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type loopHarness struct {
	events chan fsnotify.Event
	errs   chan error
	calls  atomic.Int32
	cancel context.CancelFunc
	done   chan error
	logs   *observer.ObservedLogs
}

func startLoop(t *testing.T, target string) *loopHarness {
	t.Helper()
	orig := watchDebounce
	watchDebounce = 20 * time.Millisecond
	t.Cleanup(func() { watchDebounce = orig })

	core, logs := observer.New(zap.DebugLevel)
	ctx, cancel := context.WithCancel(context.Background())
	h := &loopHarness{
		events: make(chan fsnotify.Event),
		errs:   make(chan error),
		cancel: cancel,
		done:   make(chan error, 1),
		logs:   logs,
	}
	go func() {
		h.done <- watchLoop(ctx, h.events, h.errs, target, func() { h.calls.Add(1) }, zap.New(core))
	}()
	t.Cleanup(func() {
		cancel()
		<-h.done
	})
	return h
}

func TestWatchLoop_DebouncesBurst(t *testing.T) {
	h := startLoop(t, "/work/scenario.txt")

	for i := 0; i < 3; i++ {
		h.events <- fsnotify.Event{Name: "/work/scenario.txt", Op: fsnotify.Write}
	}
	require.Eventually(t, func() bool { return h.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), h.calls.Load())

	h.events <- fsnotify.Event{Name: "/work/scenario.txt", Op: fsnotify.Create}
	require.Eventually(t, func() bool { return h.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestWatchLoop_IgnoresOtherFilesAndOps(t *testing.T) {
	h := startLoop(t, "/work/scenario.txt")

	h.events <- fsnotify.Event{Name: "/work/out.txt", Op: fsnotify.Write}
	h.events <- fsnotify.Event{Name: "/work/scenario.txt", Op: fsnotify.Chmod}
	h.events <- fsnotify.Event{Name: "/work/scenario.txt", Op: fsnotify.Remove}

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), h.calls.Load())
}

func TestWatchLoop_LogsWatcherErrors(t *testing.T) {
	h := startLoop(t, "/work/scenario.txt")

	h.errs <- errors.New("queue overflow")
	require.Eventually(t, func() bool {
		return h.logs.FilterMessage("watcher error").Len() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestWatchLoop_StopsOnCancel(t *testing.T) {
	h := startLoop(t, "/work/scenario.txt")
	h.cancel()

	select {
	case err := <-h.done:
		assert.NoError(t, err)
		h.done <- err
	case <-time.After(time.Second):
		t.Fatal("watch loop did not stop")
	}
}

func TestWatchLoop_StopsWhenEventsClose(t *testing.T) {
	events := make(chan fsnotify.Event)
	close(events)
	err := watchLoop(context.Background(), events, nil, "/work/scenario.txt", func() {}, zap.NewNop())
	assert.NoError(t, err)
}
