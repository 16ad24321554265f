package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/guanwo/internal/testutil"
)

func TestApp_Run(t *testing.T) {
	t.Run("hooks run after run returns", func(t *testing.T) {
		app := New(time.Second, testutil.Logger())
		stopped := false
		app.OnShutdown("db", func(ctx context.Context) error {
			stopped = true
			return nil
		})

		err := app.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})
		require.NoError(t, err)
		assert.True(t, stopped)
	})

	t.Run("run error is joined with hook errors", func(t *testing.T) {
		app := New(time.Second, testutil.Logger())
		runErr := errors.New("listen: address in use")
		hookErr := errors.New("close failed")
		app.OnShutdown("db", func(ctx context.Context) error {
			return hookErr
		})

		err := app.Run(context.Background(), func(ctx context.Context) error {
			return runErr
		})
		assert.ErrorIs(t, err, runErr)
		assert.ErrorIs(t, err, hookErr)
		assert.ErrorContains(t, err, "db: close failed")
	})

	t.Run("hooks run in reverse order on cancel", func(t *testing.T) {
		app := New(time.Second, testutil.Logger())
		var mu sync.Mutex
		var order []string
		for _, name := range []string{"db", "worker", "http"} {
			app.OnShutdown(name, func(ctx context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, name)
				return nil
			})
		}

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return ctx.Err()
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"http", "worker", "db"}, order)
	})

	t.Run("hook registered from inside run", func(t *testing.T) {
		app := New(time.Second, testutil.Logger())
		hookCalled := false

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			app.OnShutdown("scheduler", func(ctx context.Context) error {
				hookCalled = true
				return nil
			})
			cancel()
			<-ctx.Done()
			return nil
		})
		require.NoError(t, err)
		assert.True(t, hookCalled)
	})

	t.Run("run that ignores cancel times out", func(t *testing.T) {
		app := New(20*time.Millisecond, testutil.Logger())
		release := make(chan struct{})
		defer close(release)

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-release
			return nil
		})
		assert.ErrorContains(t, err, "did not return within")
	})
}
