//go:build darwin

package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/execabs"
)

func TestWaitForExitMultiple(t *testing.T) {
	done := execabs.Command("true")
	require.NoError(t, done.Run())
	gone := done.Process.Pid

	sleeper := execabs.Command("sleep", "1")
	require.NoError(t, sleeper.Start())
	t.Cleanup(func() { _ = sleeper.Wait() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	require.NoError(t, WaitForExitMultiple(ctx, []int{gone, sleeper.Process.Pid, gone}))
	assert.GreaterOrEqual(t, time.Since(start), 500*time.Millisecond, "returned before the running process exited")

	t.Run("all gone", func(t *testing.T) {
		assert.NoError(t, WaitForExitMultiple(ctx, []int{gone}))
	})

	t.Run("canceled", func(t *testing.T) {
		long := execabs.Command("sleep", "30")
		require.NoError(t, long.Start())
		defer func() {
			_ = long.Process.Kill()
			_ = long.Wait()
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, WaitForExitMultiple(ctx, []int{long.Process.Pid}), context.DeadlineExceeded)
	})
}
