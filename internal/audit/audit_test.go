package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo_audit.log")

	entry := Entry{
		Time:         time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC),
		Repository:   "widget",
		Organization: "acme",
		Category:     "sox",
		Region:       "china",
		CodeOwners:   []string{"alice", "bob"},
		Succeeded:    true,
	}
	require.NoError(t, Append(path, entry))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-27T10:30:00Z | widget | acme | sox | china | alice,bob | ok\n", string(data))
}

func TestAppend_EmptyRegionAndOwners(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo_audit.log")

	require.NoError(t, Append(path, Entry{
		Time:         time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC),
		Repository:   "widget",
		Organization: "acme",
		Category:     "normal",
		Succeeded:    true,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-27T10:30:00Z | widget | acme | normal |  |  | ok\n", string(data))
}

func TestAppend_FailedOutcome(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo_audit.log")

	require.NoError(t, Append(path, Entry{
		Time:         time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC),
		Repository:   "widget",
		Organization: "acme",
		Category:     "normal",
		Region:       "north-america",
		Succeeded:    false,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "| failed\n"))
	assert.Contains(t, string(data), "| north-america |")
}

func TestAppend_AppendsToExistingLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo_audit.log")

	require.NoError(t, Append(path, Entry{Repository: "first", Organization: "acme", Category: "normal", Succeeded: true}))
	require.NoError(t, Append(path, Entry{Repository: "second", Organization: "acme", Category: "normal", Succeeded: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[1], "second")
}

func TestAppend_ZeroTimeDefaultsToNow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo_audit.log")

	before := time.Now()
	require.NoError(t, Append(path, Entry{Repository: "widget", Organization: "acme", Category: "normal", Succeeded: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	ts, _, found := strings.Cut(string(data), " | ")
	require.True(t, found)

	parsed, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
	assert.False(t, parsed.Before(before.Truncate(time.Second)))
}
