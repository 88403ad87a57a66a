package sitemap

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/html/charset"

	"github.com/bonanweb/sitepush/internal/models"
	"github.com/bonanweb/sitepush/internal/utils"
)

// maxIndexDepth bounds recursion through nested sitemap indexes so a
// cyclic index cannot loop forever.
const maxIndexDepth = 4

var gzipMagic = []byte("\x1f\x8b\x08")

type Extractor struct {
	client    *http.Client
	userAgent string
	delay     time.Duration
	logger    *utils.PushLogger
}

type ExtractorConfig struct {
	Timeout    time.Duration
	UserAgent  string
	ChildDelay time.Duration
}

func NewExtractor(cfg *ExtractorConfig, logger *utils.PushLogger) *Extractor {
	return &Extractor{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		delay:     cfg.ChildDelay,
		logger:    logger,
	}
}

// Extract fetches the document at rawURL and returns the flattened,
// ordered list of page URLs it transitively references.
//
// The root document must fetch and parse cleanly; a FetchError or
// ParseError there aborts the run. Child sitemaps referenced by a
// sitemap index (or a robots.txt Sitemap directive) are best-effort:
// a failing child is logged and skipped, the rest are still collected.
func (e *Extractor) Extract(ctx context.Context, rawURL string) ([]string, error) {
	e.logger.LogInfo("fetching sitemap: %s", rawURL)

	body, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if isRobotsTxt(rawURL) {
		return e.extractFromRobots(ctx, rawURL, body)
	}
	return e.extractDocument(ctx, rawURL, body, 0)
}

// extractDocument parses body as either a sitemap index or a urlset.
func (e *Extractor) extractDocument(ctx context.Context, docURL string, body []byte, depth int) ([]string, error) {
	index, indexErr := parseSitemapIndex(body)
	if indexErr == nil {
		if depth >= maxIndexDepth {
			e.logger.LogError("sitemap index nesting too deep at %s, skipping", docURL)
			return nil, nil
		}
		return e.extractChildren(ctx, lo.Map(index.Sitemaps, func(entry models.IndexEntry, _ int) string {
			return strings.TrimSpace(entry.Loc)
		}), depth), nil
	}

	urlSet, setErr := parseURLSet(body)
	if setErr != nil {
		return nil, &ParseError{URL: docURL, Err: setErr}
	}

	urls := lo.Reduce(urlSet.URLs, func(acc []string, entry models.URL, _ int) []string {
		if loc := strings.TrimSpace(entry.Loc); loc != "" {
			return append(acc, loc)
		}
		return acc
	}, []string{})

	e.logger.LogDebug("found %d URLs in %s", len(urls), docURL)
	return urls, nil
}

// extractChildren fetches and parses each child sitemap in document
// order, skipping children that fail.
func (e *Extractor) extractChildren(ctx context.Context, locations []string, depth int) []string {
	var urls []string
	for i, loc := range locations {
		if loc == "" {
			continue
		}
		if i > 0 {
			e.wait(ctx)
		}

		e.logger.LogInfo("processing child sitemap: %s", loc)

		body, err := e.fetch(ctx, loc)
		if err != nil {
			e.logger.LogError("skipping child sitemap %s: %v", loc, err)
			continue
		}
		childURLs, err := e.extractDocument(ctx, loc, body, depth+1)
		if err != nil {
			e.logger.LogError("skipping child sitemap %s: %v", loc, err)
			continue
		}
		urls = append(urls, childURLs...)
	}
	return urls
}

// extractFromRobots follows the Sitemap directives of a robots.txt.
func (e *Extractor) extractFromRobots(ctx context.Context, robotsURL string, body []byte) ([]string, error) {
	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, &ParseError{URL: robotsURL, Err: err}
	}

	e.logger.LogInfo("robots.txt lists %d sitemaps", len(robots.Sitemaps))
	return e.extractChildren(ctx, robots.Sitemaps, 0), nil
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	return unzipIfNeeded(body)
}

// wait sleeps the configured politeness delay between child fetches.
func (e *Extractor) wait(ctx context.Context) {
	if e.delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(e.delay):
	}
}

// unzipIfNeeded transparently decompresses gzipped sitemap bodies
// (e.g. sitemap.xml.gz), detected by the gzip magic prefix.
func unzipIfNeeded(body []byte) ([]byte, error) {
	if !bytes.HasPrefix(body, gzipMagic) {
		return body, nil
	}

	reader, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return body, nil
	}
	defer reader.Close()

	uncompressed, err := io.ReadAll(reader)
	if err != nil {
		return body, nil
	}
	return uncompressed, nil
}

func parseSitemapIndex(data []byte) (*models.SitemapIndex, error) {
	var index models.SitemapIndex
	if err := decodeXML(data, &index); err != nil {
		return nil, err
	}
	return &index, nil
}

func parseURLSet(data []byte) (*models.Sitemap, error) {
	var urlSet models.Sitemap
	if err := decodeXML(data, &urlSet); err != nil {
		return nil, err
	}
	return &urlSet, nil
}

// decodeXML decodes with a charset-aware reader so sitemaps declaring
// non-UTF-8 encodings (gbk, gb2312, iso-8859-1) still parse.
func decodeXML(data []byte, v interface{}) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder.Decode(v)
}

func isRobotsTxt(rawURL string) bool {
	trimmed := strings.TrimSuffix(rawURL, "/")
	return strings.HasSuffix(trimmed, "robots.txt")
}
