package keyboard

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf16"
)

// ErrUnsupported is returned when synthetic events cannot be posted on
// this platform.
var ErrUnsupported = errors.New("keyboard: not supported on this platform")

// DefaultDelay separates consecutive keystrokes when typing.
const DefaultDelay = 30 * time.Millisecond

// poster delivers single key transitions.
type poster interface {
	key(code uint16, flags Flags, down bool, pid int) error
	text(chars []uint16, down bool, pid int) error
}

// Keyboard posts key events to the session or to one process.
type Keyboard struct {
	// PID, when non-zero, targets that process instead of the frontmost
	// application.
	PID int
	// Delay between keystrokes in Type. Zero uses DefaultDelay, negative
	// disables it.
	Delay time.Duration

	logger *slog.Logger
	post   poster
}

// New returns a Keyboard that posts through CoreGraphics.
func New(logger *slog.Logger) *Keyboard {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Keyboard{logger: logger, post: newPoster()}
}

// ForPID returns a copy of k that targets pid.
func (k *Keyboard) ForPID(pid int) *Keyboard {
	c := *k
	c.PID = pid
	return &c
}

// Press presses and releases c.
func (k *Keyboard) Press(ctx context.Context, c Combo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k.logger.Debug("press key", "combo", c.String(), "code", c.Code, "pid", k.PID)
	if err := k.post.key(c.Code, c.Flags, true, k.PID); err != nil {
		return err
	}
	return k.post.key(c.Code, c.Flags, false, k.PID)
}

// PressKeys parses each combination and presses them in order.
func (k *Keyboard) PressKeys(ctx context.Context, combos ...string) error {
	for i, s := range combos {
		c, err := Parse(s)
		if err != nil {
			return err
		}
		if i > 0 {
			if err := k.sleep(ctx); err != nil {
				return err
			}
		}
		if err := k.Press(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// Type enters text one character at a time as Unicode key events, so the
// result does not depend on the keyboard layout. Newlines press return.
func (k *Keyboard) Type(ctx context.Context, text string) error {
	k.logger.Debug("type text", "length", len(text), "pid", k.PID)
	first := true
	for _, r := range text {
		if !first {
			if err := k.sleep(ctx); err != nil {
				return err
			}
		}
		first = false
		if err := ctx.Err(); err != nil {
			return err
		}
		if r == '\n' {
			if err := k.Press(ctx, Combo{Key: "return", Code: keyCodes["return"]}); err != nil {
				return err
			}
			continue
		}
		chars := utf16.Encode([]rune{r})
		if err := k.post.text(chars, true, k.PID); err != nil {
			return err
		}
		if err := k.post.text(chars, false, k.PID); err != nil {
			return err
		}
	}
	return nil
}

func (k *Keyboard) sleep(ctx context.Context) error {
	d := k.Delay
	if d == 0 {
		d = DefaultDelay
	}
	if d < 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
