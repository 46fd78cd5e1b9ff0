package system

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input       string
		want        Version
		wantString  string
		wantRelease string
		wantErr     bool
	}{
		{input: "26.0", want: Version{Major: 26}, wantString: "26", wantRelease: "Tahoe"},
		{input: "15.0.1", want: Version{Major: 15, Patch: 1}, wantString: "15.0.1", wantRelease: "Sequoia"},
		{input: "14.2", want: Version{Major: 14, Minor: 2}, wantString: "14.2", wantRelease: "Sonoma"},
		{input: "13.0\n", want: Version{Major: 13}, wantString: "13", wantRelease: "Ventura"},
		{input: "12.6", want: Version{Major: 12, Minor: 6}, wantString: "12.6", wantRelease: "Monterey"},
		{input: "10.15.7", want: Version{Major: 10, Minor: 15, Patch: 7}, wantString: "10.15.7", wantRelease: "Catalina"},
		{input: "10.12", want: Version{Major: 10, Minor: 12}, wantString: "10.12", wantRelease: "Sierra or earlier"},
		{input: "30.1", want: Version{Major: 30, Minor: 1}, wantString: "30.1", wantRelease: "Future macOS"},
		{input: "abc", wantErr: true},
		{input: "14.x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Major, got.Major)
			assert.Equal(t, tt.want.Minor, got.Minor)
			assert.Equal(t, tt.want.Patch, got.Patch)
			assert.Equal(t, tt.wantString, got.String())
			assert.Equal(t, tt.wantRelease, got.ReleaseName())
		})
	}
}

func TestIsAtLeast(t *testing.T) {
	v := Version{Major: 14, Minor: 2, Patch: 1}
	assert.True(t, v.IsAtLeast(14, 2, 1))
	assert.True(t, v.IsAtLeast(13, 9, 9))
	assert.True(t, v.IsAtLeast(14, 1, 5))
	assert.False(t, v.IsAtLeast(14, 2, 2))
	assert.False(t, v.IsAtLeast(15, 0, 0))
}

func TestSettingsAppName(t *testing.T) {
	assert.Equal(t, "System Settings", Version{Major: 13}.SettingsAppName())
	assert.Equal(t, "System Settings", Version{Major: 15, Minor: 1}.SettingsAppName())
	assert.Equal(t, "System Preferences", Version{Major: 12, Minor: 7}.SettingsAppName())
}

func TestCurrent(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("sw_vers is only available on macOS")
	}
	v, err := Current(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v.Major, 10)
}
