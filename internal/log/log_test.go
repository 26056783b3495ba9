package log

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a fresh database for the duration of t.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLogger(t *testing.T) {
	t.Run("open and close", func(t *testing.T) {
		useTempDB(t)

		require.NoError(t, Open())
		assert.True(t, Enabled())
		assert.FileExists(t, DBPath())

		Close()
		assert.False(t, Enabled())
	})

	t.Run("log without open is a no-op", func(t *testing.T) {
		useTempDB(t)
		Event("mcp:jobs_get", "get").Write(nil)
		assert.NoFileExists(t, DBPath())
	})

	t.Run("successful tool call", func(t *testing.T) {
		useTempDB(t)
		require.NoError(t, Open())
		SetProject("/work/demo")

		Event("mcp:slides_generate", "generate").
			RequestID("req-1").
			Status(200).
			Detail("theme_id", "t1").
			Write(nil)

		var source, action, requestID, project, detail string
		var status, success int
		err := openDB(t).QueryRow(`SELECT source, action, request_id, project, status, success, detail FROM log WHERE id = 1`).
			Scan(&source, &action, &requestID, &project, &status, &success, &detail)
		require.NoError(t, err)
		assert.Equal(t, "mcp:slides_generate", source)
		assert.Equal(t, "generate", action)
		assert.Equal(t, "req-1", requestID)
		assert.Equal(t, hash("/work/demo"), project)
		assert.Len(t, project, 16)
		assert.Equal(t, 200, status)
		assert.Equal(t, 1, success)
		assert.JSONEq(t, `{"theme_id":"t1"}`, detail)
	})

	t.Run("remote error status is a failure", func(t *testing.T) {
		useTempDB(t)
		require.NoError(t, Open())

		Event("mcp:jobs_get", "get").Status(404).Write(nil)

		var success int
		require.NoError(t, openDB(t).QueryRow(`SELECT success FROM log ORDER BY id DESC LIMIT 1`).Scan(&success))
		assert.Equal(t, 0, success)
	})

	t.Run("transport error", func(t *testing.T) {
		useTempDB(t)
		require.NoError(t, Open())

		Event("api:themes", "search").Write(errors.New("connection refused"))

		var success int
		var errMsg string
		var status sql.NullInt64
		require.NoError(t, openDB(t).QueryRow(`SELECT success, error, status FROM log ORDER BY id DESC LIMIT 1`).
			Scan(&success, &errMsg, &status))
		assert.Equal(t, 0, success)
		assert.Equal(t, "connection refused", errMsg)
		assert.False(t, status.Valid)
	})
}
