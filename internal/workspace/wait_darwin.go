//go:build darwin

package workspace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// WaitForExit uses kqueue/kevent to block until the given process exits
// or ctx is done. This is the same mechanism /usr/bin/open uses for -W.
func (w *Workspace) WaitForExit(ctx context.Context, pid int) error {
	return WaitForExitMultiple(ctx, []int{pid})
}

// WaitForExitMultiple blocks until all given processes exit or ctx is done.
// Processes that are already gone count as exited.
func WaitForExitMultiple(ctx context.Context, pids []int) error {
	if len(pids) == 0 {
		return nil
	}

	kq, err := unix.Kqueue()
	if err != nil {
		return fmt.Errorf("kqueue: %w", err)
	}
	defer unix.Close(kq)

	// Register one at a time: a batch registration fails as a whole with
	// ESRCH as soon as any one pid has exited.
	remaining := 0
	seen := make(map[int]bool, len(pids))
	for _, pid := range pids {
		if seen[pid] {
			continue
		}
		seen[pid] = true
		change := []unix.Kevent_t{{
			Ident:  uint64(pid),
			Filter: unix.EVFILT_PROC,
			Flags:  unix.EV_ADD | unix.EV_ENABLE,
			Fflags: unix.NOTE_EXIT,
		}}
		if _, err := unix.Kevent(kq, change, nil, nil); err != nil {
			if errors.Is(err, unix.ESRCH) {
				continue
			}
			return fmt.Errorf("kevent register %d: %w", pid, err)
		}
		remaining++
	}

	events := make([]unix.Kevent_t, remaining)
	// Wake up periodically so cancellation is noticed.
	timeout := unix.NsecToTimespec(int64(250 * time.Millisecond))
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := unix.Kevent(kq, nil, events, &timeout)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("kevent wait: %w", err)
		}
		remaining -= exits(events[:n])
	}
	return nil
}

func exits(events []unix.Kevent_t) int {
	n := 0
	for _, ev := range events {
		if ev.Flags&unix.EV_ERROR != 0 && unix.Errno(ev.Data) == unix.ESRCH {
			n++
			continue
		}
		if ev.Fflags&unix.NOTE_EXIT != 0 {
			n++
		}
	}
	return n
}
