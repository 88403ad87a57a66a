// Package submit pushes batches of URLs to search-engine submission
// APIs (Baidu link push, Bing URL batch). Each run is stateless: no
// record is kept of previously submitted URLs.
package submit

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/bonanweb/sitepush/internal/storage"
)

// ConfigError reports missing or unusable submission inputs: an absent
// site/token/API key, or a missing or empty URL file.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SubmissionError reports a rejected push: a transport failure, a
// non-2xx status, or an API-level error field in the response.
type SubmissionError struct {
	Engine     string
	StatusCode int
	Body       string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s submission failed: %v", e.Engine, e.Err)
	}
	return fmt.Sprintf("%s submission failed: HTTP %d: %s", e.Engine, e.StatusCode, e.Body)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// LoadURLs reads the hand-off file written by the extractor. A missing
// or empty file is a ConfigError: there is nothing to submit.
func LoadURLs(store storage.URLStore) ([]string, error) {
	urls, err := store.Load()
	if err != nil {
		return nil, &ConfigError{Reason: "cannot read URL file", Err: err}
	}
	if len(urls) == 0 {
		return nil, &ConfigError{Reason: "URL file is empty, nothing to submit"}
	}
	return urls, nil
}

// PrepareBatch sizes the submission batch. When sample > 0 and the
// list is larger, it picks that many URLs uniformly at random without
// replacement; otherwise it takes the list in order. Either way the
// result never exceeds the engine's per-call limit.
func PrepareBatch(urls []string, sample, limit int) []string {
	if limit > 0 && sample > limit {
		sample = limit
	}
	if sample > 0 && len(urls) > sample {
		return lo.Samples(urls, sample)
	}
	if limit > 0 && len(urls) > limit {
		return urls[:limit]
	}
	return urls
}

// NormalizeSiteURL trims the site URL and defaults to https when no
// scheme was given.
func NormalizeSiteURL(site string) string {
	site = strings.TrimSpace(site)
	if site == "" {
		return site
	}
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		site = "https://" + site
	}
	return site
}

// MaskSecret hides the middle of a token or API key so it can be
// logged without leaking the credential.
func MaskSecret(secret string) string {
	if len(secret) > 8 {
		return secret[:4] + "***" + secret[len(secret)-4:]
	}
	return "***"
}
