package plist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Info holds the Info.plist keys xa uses.
type Info struct {
	Name                string
	DisplayName         string
	BundleID            string
	Version             string
	Executable          string
	ScriptingDefinition string
	AppleScriptEnabled  bool
	BackgroundOnly      bool
}

// ReadInfo reads Contents/Info.plist of the application bundle at path.
func ReadInfo(ctx context.Context, bundlePath string) (Info, error) {
	data, err := os.ReadFile(filepath.Join(bundlePath, "Contents", "Info.plist"))
	if err != nil {
		return Info{}, err
	}
	v, err := Decode(ctx, data)
	if err != nil {
		return Info{}, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return Info{}, fmt.Errorf("plist: %s: root is %T, not a dict", bundlePath, v)
	}
	str := func(k string) string {
		s, _ := m[k].(string)
		return s
	}
	boolean := func(k string) bool {
		switch b := m[k].(type) {
		case bool:
			return b
		case string:
			return b == "YES" || b == "true" || b == "1"
		}
		return false
	}
	return Info{
		Name:                str("CFBundleName"),
		DisplayName:         str("CFBundleDisplayName"),
		BundleID:            str("CFBundleIdentifier"),
		Version:             str("CFBundleShortVersionString"),
		Executable:          str("CFBundleExecutable"),
		ScriptingDefinition: str("OSAScriptingDefinition"),
		AppleScriptEnabled:  boolean("NSAppleScriptEnabled"),
		BackgroundOnly:      boolean("LSBackgroundOnly"),
	}, nil
}

// ScriptingDefinitionPath returns the path of the bundle's sdef file, or ""
// when the bundle does not declare one.
func (i Info) ScriptingDefinitionPath(bundlePath string) string {
	if i.ScriptingDefinition == "" {
		return ""
	}
	return filepath.Join(bundlePath, "Contents", "Resources", i.ScriptingDefinition)
}
