package relay

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script standing in for the
// search utility
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "search.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestCommandBackend_JSONFile(t *testing.T) {
	// $1 query, $2 --json, $3 file, $4 --limit, $5 n, $6 --no-cache
	script := writeScript(t, `
[ "$4" = "--limit" ] && [ "$6" = "--no-cache" ] || exit 3
cat > "$3" <<'JSON'
[
  {"title": "Eiffel Tower", "description": "Wrought-iron tower", "link": "https://example.com/eiffel"},
  {"title": "Paris", "snippet": "Capital of France", "url": "https://example.com/paris"}
]
JSON
`)

	results, err := NewCommandBackend(script, nil, 5*time.Second).Search(context.Background(), "eiffel tower", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Wrought-iron tower", results[0].Snippet)
	assert.Equal(t, "https://example.com/eiffel", results[0].URL)
	assert.Equal(t, "Capital of France", results[1].Snippet)
	assert.Equal(t, "https://example.com/paris", results[1].URL)
}

func TestCommandBackend_ExtraArgsPrecedeQuery(t *testing.T) {
	script := writeScript(t, `
[ "$1" = "--region" ] && [ "$2" = "wt-wt" ] && [ "$3" = "the query" ] || exit 3
printf '[{"title": "ok", "description": "d", "link": "https://example.com"}]' > "$5"
`)

	results, err := NewCommandBackend(script, []string{"--region", "wt-wt"}, 5*time.Second).Search(context.Background(), "the query", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ok", results[0].Title)
}

func TestCommandBackend_StdoutFallback(t *testing.T) {
	script := writeScript(t, `
echo "Searching..."
echo "1. Eiffel Tower"
echo "   https://example.com/eiffel"
echo "   The tower is 330 metres tall"
echo "2. Paris"
echo "   https://example.com/paris"
echo "   ==========="
`)

	results, err := NewCommandBackend(script, nil, 5*time.Second).Search(context.Background(), "q", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Eiffel Tower", results[0].Title)
	assert.Equal(t, "The tower is 330 metres tall", results[0].Snippet)
	assert.Equal(t, "https://example.com/paris", results[1].URL)
	assert.Equal(t, "No Description", results[1].Snippet)
}

func TestCommandBackend_Failure(t *testing.T) {
	script := writeScript(t, "echo 'boom' >&2\nexit 1\n")

	_, err := NewCommandBackend(script, nil, 5*time.Second).Search(context.Background(), "q", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestCommandBackend_Timeout(t *testing.T) {
	script := writeScript(t, "exec sleep 5\n")

	_, err := NewCommandBackend(script, nil, 100*time.Millisecond).Search(context.Background(), "q", 5)
	assert.ErrorIs(t, err, ErrSearchTimeout)
}

func TestParsePlainText(t *testing.T) {
	text := "noise before\n" +
		"1. First\n" +
		"   http://one.example\n" +
		"   first snippet\n" +
		"   key=value\n" +
		"2.Second\n" +
		"   second snippet\n"

	results := parsePlainText(text)
	require.Len(t, results, 2)
	assert.Equal(t, "First", results[0].Title)
	assert.Equal(t, "http://one.example", results[0].URL)
	assert.Equal(t, "first snippet", results[0].Snippet)
	assert.Equal(t, "Second", results[1].Title)
	assert.Equal(t, "", results[1].URL)
	assert.Equal(t, "second snippet", results[1].Snippet)
}

func TestParsePlainText_CappedByNormalize(t *testing.T) {
	text := ""
	for i := 1; i <= 7; i++ {
		text += string(rune('0'+i)) + ". title\n"
	}
	assert.Len(t, normalize(parsePlainText(text), 0), DefaultLimit)
}
