package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalescerMergesTriggersDuringRun(t *testing.T) {
	started := make(chan struct{}, 4)
	release := make(chan struct{})
	var runs atomic.Int32

	c := NewCoalescer(func(ctx context.Context, _ string) error {
		runs.Add(1)
		started <- struct{}{}
		<-release
		return nil
	}, quietLogger())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	c.Trigger("first")
	<-started
	require.True(t, c.Stats().Running)

	for range 5 {
		c.Trigger("burst")
	}
	release <- struct{}{}

	<-started
	release <- struct{}{}

	require.Eventually(t, func() bool { return c.Stats().Runs == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), runs.Load())
	assert.Equal(t, 4, c.Stats().Coalesced)

	// no third run was queued
	select {
	case <-started:
		t.Fatal("unexpected extra run")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	<-done
}

func TestCoalescerRecordsLastError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCoalescer(func(context.Context, string) error { return boom }, quietLogger())

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go c.Run(ctx)

	c.Trigger("x")
	require.Eventually(t, func() bool { return c.Stats().Runs == 1 }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, c.Stats().LastError, boom)
}

func TestConfigWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

	var calls atomic.Int32
	w, err := NewConfigWatcher(path, 50*time.Millisecond, func() { calls.Add(1) }, quietLogger())
	require.NoError(t, err)
	require.NoError(t, w.Start(t.Context()))
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))
	for i := range 3 {
		require.NoError(t, os.WriteFile(path, []byte{byte('b' + i)}, 0o600))
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDaemonValidation(t *testing.T) {
	noop := func(context.Context, string) error { return nil }

	_, err := New(Config{RunOnStart: true}, nil, nil)
	require.Error(t, err)

	_, err = New(Config{}, noop, nil)
	require.Error(t, err)

	_, err = New(Config{Watch: true}, noop, nil)
	require.Error(t, err)
}

func TestDaemonRunsOnStartAndOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

	var reasons atomic.Value
	reasons.Store([]string{})
	var runs atomic.Int32
	d, err := New(Config{
		ConfigPath: path,
		Watch:      true,
		Debounce:   20 * time.Millisecond,
		RunOnStart: true,
	}, func(_ context.Context, reason string) error {
		reasons.Store(append(reasons.Load().([]string), reason))
		runs.Add(1)
		return nil
	}, quietLogger())
	require.NoError(t, err)

	require.NoError(t, d.Start(t.Context()))
	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("b"), 0o600))
	require.Eventually(t, func() bool { return runs.Load() == 2 }, 2*time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))
	assert.Equal(t, []string{"startup", "config-change"}, reasons.Load().([]string))
}
