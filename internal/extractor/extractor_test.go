package extractor_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trapdoorsec/rinzler/internal/extractor"
)

func TestExtractElements_LinksInDocumentOrder(t *testing.T) {
	body := `<html><body>
		<a href="/page1">One</a>
		<a href="/page2">Two</a>
		<a href="http://example.com/page3">Three</a>
	</body></html>`

	result := extractor.ExtractElements(body, "http://example.com/", "example.com", nil, false)

	assert.Equal(t, []string{
		"http://example.com/page1",
		"http://example.com/page2",
		"http://example.com/page3",
	}, result.Links)
}

func TestExtractElements_SkipsNonNavigableSchemes(t *testing.T) {
	body := `<html><body>
		<a href="javascript:alert(1)">js</a>
		<a href="mailto:x@y.z">mail</a>
		<a href="tel:+3112345">tel</a>
		<a href="#anchor">anchor</a>
		<a href="">empty</a>
		<a href="/real">real</a>
	</body></html>`

	result := extractor.ExtractElements(body, "http://example.com/", "example.com", nil, false)

	assert.Equal(t, []string{"http://example.com/real"}, result.Links)
}

func TestExtractElements_StripsFragments(t *testing.T) {
	body := `<a href="/docs#intro">docs</a>`

	result := extractor.ExtractElements(body, "http://example.com/", "example.com", nil, false)

	assert.Equal(t, []string{"http://example.com/docs"}, result.Links)
}

func TestExtractElements_SubdomainIsSameDomain(t *testing.T) {
	body := `<a href="http://api.example.com/v1">api</a>`

	result := extractor.ExtractElements(body, "http://example.com/", "example.com", nil, false)

	assert.Equal(t, []string{"http://api.example.com/v1"}, result.Links)
}

func TestExtractElements_CrossDomainDropsWithoutPolicy(t *testing.T) {
	body := `<a href="http://other.test/x">other</a>`

	result := extractor.ExtractElements(body, "http://example.com/", "example.com", nil, false)

	assert.Empty(t, result.Links)
}

func TestExtractElements_CrossDomainAutoFollow(t *testing.T) {
	body := `<a href="http://other.test/x">other</a>`

	result := extractor.ExtractElements(body, "http://example.com/", "example.com", nil, true)

	assert.Equal(t, []string{"http://other.test/x"}, result.Links)
}

func TestExtractElements_CrossDomainConsultsPredicate(t *testing.T) {
	body := `<a href="http://other.test/x">other</a>`
	var calls atomic.Int32
	admit := func(url, base string) bool {
		calls.Add(1)
		assert.Equal(t, "http://other.test/x", url)
		assert.Equal(t, "example.com", base)
		return true
	}

	result := extractor.ExtractElements(body, "http://example.com/", "example.com", admit, false)

	assert.Equal(t, []string{"http://other.test/x"}, result.Links)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExtractElements_CountsFormsAndExternalScripts(t *testing.T) {
	body := `<html><body>
		<form action="/login"></form>
		<form action="/search"></form>
		<script src="/app.js"></script>
		<script>inline()</script>
	</body></html>`

	result := extractor.ExtractElements(body, "http://example.com/", "example.com", nil, false)

	assert.Equal(t, 2, result.FormsCount)
	assert.Equal(t, 1, result.ScriptsCount)
}

func TestExtractElements_GarbageInputYieldsNothing(t *testing.T) {
	result := extractor.ExtractElements("\x00\x01 not html at all", "http://example.com/", "example.com", nil, false)

	assert.Empty(t, result.Links)
	assert.Zero(t, result.FormsCount)
	assert.Zero(t, result.ScriptsCount)
}
