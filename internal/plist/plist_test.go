package plist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "Sample.app", "Contents", "Info.plist"))
	require.NoError(t, err)

	v, err := Decode(context.Background(), data)
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "com.example.Sample", m["CFBundleIdentifier"])
	assert.Equal(t, true, m["NSAppleScriptEnabled"])
	assert.Equal(t, int64(42), m["Build"])
	assert.Equal(t, 1.5, m["Scale"])
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), m["Released"])
	assert.Equal(t, []byte("hello"), m["Blob"])

	types, ok := m["CFBundleDocumentTypes"].([]any)
	require.True(t, ok)
	require.Len(t, types, 1)
	doc := types[0].(map[string]any)
	assert.Equal(t, "Editor", doc["CFBundleTypeRole"])
	assert.Equal(t, []any{"public.plain-text"}, doc["LSItemContentTypes"])
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"truncated":   `<plist><dict><key>a</key>`,
		"missing key": `<plist><dict><string>a</string></dict></plist>`,
		"bad integer": `<plist><integer>x</integer></plist>`,
		"unknown":     `<plist><blob/></plist>`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(context.Background(), []byte(in))
			assert.Error(t, err)
		})
	}
}

func TestReadInfo(t *testing.T) {
	path := filepath.Join("testdata", "Sample.app")
	info, err := ReadInfo(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, Info{
		Name:                "Sample",
		DisplayName:         "Sample",
		BundleID:            "com.example.Sample",
		Version:             "2.1",
		Executable:          "Sample",
		ScriptingDefinition: "Sample.sdef",
		AppleScriptEnabled:  true,
	}, info)
	assert.Equal(t, filepath.Join(path, "Contents", "Resources", "Sample.sdef"), info.ScriptingDefinitionPath(path))
	assert.Equal(t, "", Info{}.ScriptingDefinitionPath(path))

	_, err = ReadInfo(context.Background(), filepath.Join("testdata", "Missing.app"))
	assert.Error(t, err)
}
