package aevent

import (
	"context"

	"github.com/tmc/xa/osa"
)

// LoginWindow is the bundle id that handles session and power events.
const LoginWindow = "com.apple.loginwindow"

func loginWindow(ctx context.Context, r osa.Runner, id OSType) error {
	_, err := Send(ctx, r, New(CoreEventClass, id, LoginWindow).WithMode(NoReply))
	return err
}

// Sleep puts the computer to sleep.
func Sleep(ctx context.Context, r osa.Runner) error {
	return loginWindow(ctx, r, AESleep)
}

// ShowLogoutDialog asks the user to confirm logging out.
func ShowLogoutDialog(ctx context.Context, r osa.Runner) error {
	return loginWindow(ctx, r, AELogOut)
}

// LogoutImmediately logs out without confirmation.
func LogoutImmediately(ctx context.Context, r osa.Runner) error {
	return loginWindow(ctx, r, AEReallyLogOut)
}

// ShowRestartDialog asks the user to confirm restarting.
func ShowRestartDialog(ctx context.Context, r osa.Runner) error {
	return loginWindow(ctx, r, AEShowRestartDialog)
}

// RestartImmediately restarts without confirmation.
func RestartImmediately(ctx context.Context, r osa.Runner) error {
	return loginWindow(ctx, r, AERestart)
}

// ShowShutdownDialog asks the user to confirm shutting down.
func ShowShutdownDialog(ctx context.Context, r osa.Runner) error {
	return loginWindow(ctx, r, AEShowShutdownDialog)
}

// ShutdownImmediately shuts down without confirmation.
func ShutdownImmediately(ctx context.Context, r osa.Runner) error {
	return loginWindow(ctx, r, AEShutDown)
}

// Quit sends the quit event to the application with the given bundle id
// and waits for it to answer.
func Quit(ctx context.Context, r osa.Runner, bundleID string) error {
	_, err := Send(ctx, r, New(CoreEventClass, AEQuitApplication, bundleID))
	return err
}

// Open sends an open-documents event for paths.
func Open(ctx context.Context, r osa.Runner, bundleID string, paths ...string) error {
	files := make([]File, len(paths))
	for i, p := range paths {
		files[i] = File(p)
	}
	_, err := Send(ctx, r, New(CoreEventClass, AEOpenDocuments, bundleID).WithDirect(files))
	return err
}

// Power maps the action names accepted by the power helpers to their
// functions.
var Power = map[string]func(context.Context, osa.Runner) error{
	"sleep":        Sleep,
	"logout":       ShowLogoutDialog,
	"logout-now":   LogoutImmediately,
	"restart":      ShowRestartDialog,
	"restart-now":  RestartImmediately,
	"shutdown":     ShowShutdownDialog,
	"shutdown-now": ShutdownImmediately,
}
