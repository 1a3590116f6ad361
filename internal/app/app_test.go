package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-bridge/internal/config"
)

type fakeRunner struct {
	startErr error
	stopped  atomic.Bool
	done     chan struct{}
}

func newFakeRunner(startErr error) *fakeRunner {
	return &fakeRunner{startErr: startErr, done: make(chan struct{})}
}

func (f *fakeRunner) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.done
	return nil
}

func (f *fakeRunner) Stop(context.Context) error {
	if f.stopped.CompareAndSwap(false, true) {
		close(f.done)
	}
	return nil
}

func newTestApp(r Runner) *App {
	return NewApp(&config.Config{}, r, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	runner := newFakeRunner(nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- newTestApp(runner).Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.True(t, runner.stopped.Load())
}

func TestApp_RunReturnsStartError(t *testing.T) {
	runner := newFakeRunner(errors.New("address already in use"))

	err := newTestApp(runner).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
	assert.True(t, runner.stopped.Load())
}
