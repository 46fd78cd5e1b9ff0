package tcc

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sys/execabs"
)

// Reset resets a TCC service for the given bundle ID with tccutil. Service
// names are tccutil's ("AppleEvents", "Accessibility", "All", ...).
func Reset(ctx context.Context, logger *slog.Logger, service, bundleID string) error {
	if service == "" {
		return fmt.Errorf("service cannot be empty")
	}
	args := []string{"reset", service}
	if bundleID != "" {
		args = append(args, bundleID)
	}
	logger.Debug("xa: tccutil", "service", service, "bundle_id", bundleID)

	output, err := execabs.CommandContext(ctx, "tccutil", args...).CombinedOutput()
	if err != nil {
		logger.Debug("xa: tccutil failed", "output", string(output))
		return fmt.Errorf("tccutil reset %s failed: %w", service, err)
	}
	return nil
}

// ResetAutomation clears Automation consent so the next Apple Event from
// bundleID prompts again. An empty bundleID resets every client.
func ResetAutomation(ctx context.Context, logger *slog.Logger, bundleID string) error {
	return Reset(ctx, logger, "AppleEvents", bundleID)
}

// Settings panes for the services xa cares about.
var paneURLs = map[string]string{
	"automation":    "x-apple.systempreferences:com.apple.preference.security?Privacy_Automation",
	"accessibility": "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility",
	"files":         "x-apple.systempreferences:com.apple.preference.security?Privacy_AllFiles",
}

// PaneURL returns the System Settings URL for a privacy pane.
func PaneURL(service string) (string, error) {
	u, ok := paneURLs[service]
	if !ok {
		return "", fmt.Errorf("unknown privacy pane: %s", service)
	}
	return u, nil
}
