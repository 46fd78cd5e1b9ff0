package workspace

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sys/execabs"
)

// applicationQuery is the Spotlight query for application bundles.
const applicationQuery = "kMDItemContentType == 'com.apple.application-bundle'"

// ApplicationPaths returns the paths of every application bundle in the
// Spotlight index, sorted.
func (w *Workspace) ApplicationPaths(ctx context.Context) ([]string, error) {
	cmd := execabs.CommandContext(ctx, "mdfind", applicationQuery)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("mdfind: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	paths := parsePaths(out)
	w.logger.Debug("xa: spotlight", "applications", len(paths))
	return paths, nil
}

func parsePaths(out []byte) []string {
	var paths []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if p := strings.TrimSpace(sc.Text()); p != "" {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// MatchApplication picks the bundle for name from paths: an exact
// "<name>.app" base name wins, then the shortest path whose base name
// contains name, both compared case-insensitively.
func MatchApplication(paths []string, name string) (string, bool) {
	want := strings.ToLower(strings.TrimSuffix(name, ".app"))
	var best string
	for _, p := range paths {
		base := strings.ToLower(strings.TrimSuffix(filepath.Base(p), ".app"))
		if base == want {
			return p, true
		}
		if strings.Contains(base, want) && (best == "" || len(p) < len(best)) {
			best = p
		}
	}
	return best, best != ""
}

// ApplicationNames returns the display names of application paths.
func ApplicationNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = strings.TrimSuffix(filepath.Base(p), ".app")
	}
	return names
}
