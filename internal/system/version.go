// Package system reports facts about the running macOS installation.
package system

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sys/execabs"
)

// Version represents a parsed macOS version.
type Version struct {
	Major int
	Minor int
	Patch int
	Raw   string
}

// String returns the version as a string.
func (v Version) String() string {
	if v.Patch > 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if v.Minor > 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(v.Major)
}

// ReleaseName returns the marketing name for the macOS version.
func (v Version) ReleaseName() string {
	switch v.Major {
	case 26:
		return "Tahoe"
	case 15:
		return "Sequoia"
	case 14:
		return "Sonoma"
	case 13:
		return "Ventura"
	case 12:
		return "Monterey"
	case 11:
		return "Big Sur"
	case 10:
		switch {
		case v.Minor >= 15:
			return "Catalina"
		case v.Minor >= 14:
			return "Mojave"
		case v.Minor >= 13:
			return "High Sierra"
		}
		return "Sierra or earlier"
	}
	if v.Major > 26 {
		return "Future macOS"
	}
	return "Unknown"
}

// IsAtLeast checks if this version is at least the specified version.
func (v Version) IsAtLeast(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}

// SettingsAppName returns "System Settings" on Ventura and later and
// "System Preferences" before.
func (v Version) SettingsAppName() string {
	if v.IsAtLeast(13, 0, 0) {
		return "System Settings"
	}
	return "System Preferences"
}

// Parse parses a version string like "14.2.1" or "15.0".
func Parse(version string) (Version, error) {
	result := Version{Raw: version}
	parts := strings.Split(strings.TrimSpace(version), ".")
	fields := []*int{&result.Major, &result.Minor, &result.Patch}
	for i, p := range parts {
		if i >= len(fields) {
			break
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return result, fmt.Errorf("invalid version %q: %w", version, err)
		}
		*fields[i] = n
	}
	return result, nil
}

var (
	currentOnce sync.Once
	current     Version
	currentErr  error
)

// Current returns the running macOS version, read once with sw_vers.
func Current(ctx context.Context) (Version, error) {
	currentOnce.Do(func() {
		out, err := execabs.CommandContext(ctx, "sw_vers", "-productVersion").Output()
		if err != nil {
			currentErr = fmt.Errorf("failed to run sw_vers: %w", err)
			return
		}
		current, currentErr = Parse(string(out))
	})
	return current, currentErr
}
