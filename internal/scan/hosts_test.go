package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trapdoorsec/rinzler/internal/scan"
)

func writeHostsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseURLLine(t *testing.T) {
	parsed, ok := scan.ParseURLLine("http://example.com/x")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/x", parsed)

	parsed, ok = scan.ParseURLLine("example.com")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com", parsed)

	_, ok = scan.ParseURLLine("not a url at all")
	assert.False(t, ok)
}

func TestLoadURLsFromFile(t *testing.T) {
	path := writeHostsFile(t, "http://a.test\n\nb.test\nnot a url at all\n  https://c.test/x  \n")

	urls, err := scan.LoadURLsFromFile(path)
	require.Nil(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test", "https://c.test/x"}, urls)
}

func TestLoadURLsFromFile_NoValidLines(t *testing.T) {
	path := writeHostsFile(t, "not a url at all\n\n")

	_, err := scan.LoadURLsFromFile(path)
	require.NotNil(t, err)
	var scanErr *scan.ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, scan.ErrCauseNoTargets, scanErr.Cause)
}

func TestLoadURLsFromFile_Missing(t *testing.T) {
	_, err := scan.LoadURLsFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.NotNil(t, err)
}

func TestLoadURLsFromSource(t *testing.T) {
	urls, err := scan.LoadURLsFromSource("http://a.test", "")
	require.Nil(t, err)
	assert.Equal(t, []string{"http://a.test"}, urls)

	_, err = scan.LoadURLsFromSource("", "")
	assert.NotNil(t, err)
}
