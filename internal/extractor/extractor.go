package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/trapdoorsec/rinzler/pkg/urlutil"
)

/*
Responsibilities

- Parse HTML into a DOM tree
- Enumerate <a href> links, resolve them to absolute URLs
- Filter non-navigable schemes and apply the cross-domain policy
- Count forms and external scripts

The extractor never performs I/O. Parse failure is non-fatal and yields
an empty extraction.
*/

// ExtractElements enumerates links, forms and external scripts in body.
// Same-domain links are always admitted. Cross-domain links are admitted
// when autoFollow is set, otherwise when the admit predicate approves.
func ExtractElements(
	body string,
	currentURL string,
	baseDomain string,
	admit CrossDomainFunc,
	autoFollow bool,
) Extraction {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Extraction{}
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		absolute, ok := urlutil.ResolveHref(currentURL, href)
		if !ok {
			return
		}
		if urlutil.SameDomain(absolute, baseDomain) {
			links = append(links, absolute)
			return
		}
		if autoFollow {
			links = append(links, absolute)
			return
		}
		if admit != nil && admit(absolute, baseDomain) {
			links = append(links, absolute)
		}
	})

	return Extraction{
		Links:        links,
		FormsCount:   doc.Find("form").Length(),
		ScriptsCount: doc.Find("script[src]").Length(),
	}
}
