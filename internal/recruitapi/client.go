package recruitapi

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultAPIURL = "http://localhost:8000/api/v1"
	userAgent     = "spigell/hire-assistant (spigelly@gmail.com)"
	// Requests are short: the matching endpoint is the slowest one.
	defaultTimeout = 30 * time.Second
)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New returns a client for the hiring assistant API. An empty apiURL falls back to DefaultAPIURL.
// The token is optional: when set it is sent as a bearer token.
func New(logger *zap.Logger, apiURL, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiURL = strings.TrimSuffix(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return &Client{
		token:  strings.TrimSpace(token),
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// SetTimeout overrides the http client timeout. Non-positive values are ignored.
func (c *Client) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	c.HTTPClient.Timeout = d
}
