package submit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bonanweb/sitepush/internal/utils"
)

const (
	// DefaultBaiduEndpoint is the Baidu webmaster link-push API.
	DefaultBaiduEndpoint = "http://data.zz.baidu.com/urls"

	// BaiduBatchLimit is the API-imposed cap per push call.
	BaiduBatchLimit = 10
)

// BaiduResult is the response of the Baidu push endpoint. On success
// it carries the accepted count and the remaining daily quota; on
// rejection an error code and message.
type BaiduResult struct {
	Success     int      `json:"success"`
	Remain      int      `json:"remain"`
	NotSameSite []string `json:"not_same_site,omitempty"`
	NotValid    []string `json:"not_valid,omitempty"`
	ErrorCode   int      `json:"error,omitempty"`
	Message     string   `json:"message,omitempty"`
}

type BaiduClient struct {
	endpoint string
	client   *http.Client
	logger   *utils.PushLogger
}

func NewBaiduClient(endpoint string, timeout time.Duration, logger *utils.PushLogger) *BaiduClient {
	if endpoint == "" {
		endpoint = DefaultBaiduEndpoint
	}
	return &BaiduClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Submit pushes the batch to Baidu as a newline-joined text/plain body
// with site and token in the query string.
func (c *BaiduClient) Submit(ctx context.Context, site, token string, urls []string) (*BaiduResult, error) {
	site = NormalizeSiteURL(site)
	if site == "" {
		return nil, &ConfigError{Reason: "site URL is required (--site or SITE_URL)"}
	}
	if token == "" {
		return nil, &ConfigError{Reason: "Baidu token is required (--token or BAIDU_TOKEN)"}
	}

	query := url.Values{}
	query.Set("site", site)
	query.Set("token", token)
	apiURL := c.endpoint + "?" + query.Encode()

	c.logger.LogInfo("submitting %d URLs to Baidu (token: %s)", len(urls), MaskSecret(token))
	c.logger.LogDebug("push endpoint: %s", strings.Replace(apiURL, token, MaskSecret(token), 1))

	body := strings.Join(urls, "\n")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(body))
	if err != nil {
		return nil, &SubmissionError{Engine: "baidu", Err: err}
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &SubmissionError{Engine: "baidu", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SubmissionError{Engine: "baidu", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &SubmissionError{Engine: "baidu", StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result BaiduResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &SubmissionError{Engine: "baidu", StatusCode: resp.StatusCode, Body: string(respBody), Err: err}
	}
	if result.ErrorCode != 0 {
		return nil, &SubmissionError{Engine: "baidu", StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return &result, nil
}
