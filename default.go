package xa

import (
	"context"
	"sync"
)

var (
	defaultOnce    sync.Once
	defaultSession *Session
)

// Default returns the session used by the package-level functions. It is
// built on first use from XA_ environment variables.
func Default() *Session {
	defaultOnce.Do(func() {
		defaultSession = NewSession(NewConfig().FromEnv())
	})
	return defaultSession
}

// Open returns the named application using the default session,
// launching it in the background when needed.
func Open(ctx context.Context, name string) (*Application, error) {
	return Default().Application(ctx, name)
}

// LaunchApplication launches and activates the named application using the
// default session.
func LaunchApplication(ctx context.Context, name string) (*Application, error) {
	return Default().LaunchApplication(ctx, name)
}

// CurrentApplication returns the frontmost application.
func CurrentApplication(ctx context.Context) (*Application, error) {
	return Default().CurrentApplication(ctx)
}

// RunningApplications returns the applications with windows on screen.
func RunningApplications(ctx context.Context) ([]*Application, error) {
	return Default().RunningApplications(ctx)
}

// RunJXA runs a JXA function body with the default session.
func RunJXA(ctx context.Context, body string, args ...string) (Value, error) {
	return Default().RunJXA(ctx, body, args...)
}

// RunAppleScript runs AppleScript source with the default session.
func RunAppleScript(ctx context.Context, source string, args ...string) (string, error) {
	return Default().RunAppleScript(ctx, source, args...)
}

// OpenURL opens a URL with its default handler.
func OpenURL(ctx context.Context, rawURL string) error {
	return Default().OpenURL(ctx, rawURL)
}
