package tcc

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "TCC.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE access (
		service TEXT NOT NULL,
		client TEXT NOT NULL,
		client_type INTEGER NOT NULL,
		auth_value INTEGER NOT NULL,
		auth_reason INTEGER NOT NULL,
		auth_version INTEGER NOT NULL DEFAULT 1,
		indirect_object_identifier TEXT,
		last_modified INTEGER
	)`)
	require.NoError(t, err)

	rows := []struct {
		service, client, target string
		auth                    int
	}{
		{ServiceAppleEvents, "com.apple.Terminal", "com.apple.Safari", AuthAllowed},
		{ServiceAppleEvents, "com.apple.Terminal", "com.apple.Notes", AuthDenied},
		{ServiceAppleEvents, "com.googlecode.iterm2", "com.apple.finder", AuthAllowed},
		{"kTCCServiceCamera", "com.apple.Terminal", "UNUSED", AuthAllowed},
	}
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO access (service, client, client_type, auth_value, auth_reason, indirect_object_identifier, last_modified)
			VALUES (?, ?, 0, ?, 3, ?, 1700000000)`, r.service, r.client, r.auth, r.target)
		require.NoError(t, err)
	}
	return path
}

func TestAutomationEntries(t *testing.T) {
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	all, err := db.AutomationEntries(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "com.apple.Terminal", all[0].Client)
	assert.Equal(t, "com.apple.Notes", all[0].Target)
	assert.False(t, all[0].Allowed)
	assert.Equal(t, "com.apple.Safari", all[1].Target)
	assert.True(t, all[1].Allowed)
	assert.Equal(t, int64(1700000000), all[1].LastModified.Unix())

	iterm, err := db.AutomationEntries(ctx, "com.googlecode.iterm2")
	require.NoError(t, err)
	require.Len(t, iterm, 1)
	assert.Equal(t, "com.apple.finder", iterm[0].Target)
}

func TestAutomationStatus(t *testing.T) {
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer db.Close()

	tests := []struct {
		client, target string
		want           Status
	}{
		{"com.apple.Terminal", "com.apple.Safari", StatusAllowed},
		{"com.apple.Terminal", "com.apple.Notes", StatusDenied},
		{"com.apple.Terminal", "com.apple.iCal", StatusNotDetermined},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, err := db.AutomationStatus(context.Background(), tt.client, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "not determined", StatusNotDetermined.String())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"))
	assert.ErrorContains(t, err, "Full Disk Access")
}

func TestPaneURL(t *testing.T) {
	u, err := PaneURL("automation")
	require.NoError(t, err)
	assert.Contains(t, u, "Privacy_Automation")
	_, err = PaneURL("camera")
	assert.Error(t, err)
}
