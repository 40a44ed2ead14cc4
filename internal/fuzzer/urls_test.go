package fuzzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trapdoorsec/rinzler/internal/fuzzer"
)

func TestBuildTestURL(t *testing.T) {
	cases := []struct {
		name string
		base string
		word string
		want string
	}{
		{"bare host", "http://example.com", "api", "http://example.com/api"},
		{"trailing slash", "http://example.com/", "test", "http://example.com/test"},
		{"existing path", "http://example.com/api", "users", "http://example.com/api/users"},
		{"leading slash word", "http://example.com", "/admin", "http://example.com/admin"},
		{"port preserved", "http://example.com:8080/api", "v1", "http://example.com:8080/api/v1"},
		{"https", "https://api.example.com", "endpoint", "https://api.example.com/endpoint"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fuzzer.BuildTestURL(tc.base, tc.word)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildTestURL_Deterministic(t *testing.T) {
	first, err := fuzzer.BuildTestURL("http://example.com/api", "v1")
	require.NoError(t, err)
	second, err := fuzzer.BuildTestURL("http://example.com/api", "v1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildTestURL_InvalidBase(t *testing.T) {
	_, err := fuzzer.BuildTestURL("not a url", "test")
	assert.Error(t, err)
}

func TestExtractBaseURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "http://example.com/api/users", "http://example.com/api/users"},
		{"query stripped", "http://example.com/api?test=1", "http://example.com/api"},
		{"fragment stripped", "http://example.com/page#section", "http://example.com/page"},
		{"query and fragment", "http://example.com/api?key=val#top", "http://example.com/api"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fuzzer.ExtractBaseURL(tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractBaseURL_Idempotent(t *testing.T) {
	once, err := fuzzer.ExtractBaseURL("http://example.com/api?x=1#frag")
	require.NoError(t, err)
	twice, err := fuzzer.ExtractBaseURL(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestExtractBaseURL_Invalid(t *testing.T) {
	_, err := fuzzer.ExtractBaseURL("not a url")
	assert.Error(t, err)
}
