package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bonanweb/sitepush/internal/utils"
)

const (
	// DefaultBingEndpoint is the Bing webmaster URL batch API.
	DefaultBingEndpoint = "https://ssl.bing.com/webmaster/api.svc/json/SubmitUrlbatch"

	// BingBatchLimit is the cap per batch call.
	BingBatchLimit = 100
)

type bingRequest struct {
	SiteURL string   `json:"siteUrl"`
	URLList []string `json:"urlList"`
}

type BingClient struct {
	endpoint string
	client   *http.Client
	logger   *utils.PushLogger
}

func NewBingClient(endpoint string, timeout time.Duration, logger *utils.PushLogger) *BingClient {
	if endpoint == "" {
		endpoint = DefaultBingEndpoint
	}
	return &BingClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Submit pushes the batch to Bing as a JSON {siteUrl, urlList} body
// with the API key in the query string. Bing answers a 2xx with an
// empty or JSON body on acceptance; anything else is a rejection.
func (c *BingClient) Submit(ctx context.Context, site, apiKey string, urls []string) error {
	site = NormalizeSiteURL(site)
	if site == "" {
		return &ConfigError{Reason: "site URL is required (--site or SITE_URL)"}
	}
	if apiKey == "" {
		return &ConfigError{Reason: "Bing API key is required (--api-key or BING_API_KEY)"}
	}

	query := url.Values{}
	query.Set("apikey", apiKey)
	apiURL := c.endpoint + "?" + query.Encode()

	payload, err := json.Marshal(bingRequest{SiteURL: site, URLList: urls})
	if err != nil {
		return &SubmissionError{Engine: "bing", Err: err}
	}

	c.logger.LogInfo("submitting %d URLs to Bing (api key: %s)", len(urls), MaskSecret(apiKey))
	c.logger.LogDebug("request body: %s", string(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return &SubmissionError{Engine: "bing", Err: err}
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return &SubmissionError{Engine: "bing", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &SubmissionError{Engine: "bing", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &SubmissionError{Engine: "bing", StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	c.logger.LogDebug("Bing response: %s", string(respBody))
	return nil
}
