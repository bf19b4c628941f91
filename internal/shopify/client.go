package shopify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/metasync/internal/config"
	apperrors "github.com/jafarshop/metasync/pkg/errors"
)

const maxAttempts = 3

type Client struct {
	shopDomain  string
	accessToken string
	apiVersion  string
	endpoint    string
	backoff     time.Duration
	httpClient  *http.Client
	logger      *zap.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithEndpoint overrides the computed GraphQL endpoint URL
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Shopify GraphQL client for one store
func NewClient(store config.StoreConfig, apiVersion string, logger *zap.Logger, opts ...Option) *Client {
	// Normalize shop domain - remove https://, http://, and trailing slashes
	shopDomain := store.Domain
	shopDomain = strings.TrimPrefix(shopDomain, "https://")
	shopDomain = strings.TrimPrefix(shopDomain, "http://")
	shopDomain = strings.TrimSuffix(shopDomain, "/")

	c := &Client{
		shopDomain:  shopDomain,
		accessToken: store.Token,
		apiVersion:  apiVersion,
		backoff:     time.Second,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ShopDomain returns the normalized store domain this client talks to
func (c *Client) ShopDomain() string {
	return c.shopDomain
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// Execute executes a GraphQL query/mutation. Timeouts and 429 responses are
// retried up to maxAttempts with a short backoff; every other failure
// surfaces immediately.
func (c *Client) Execute(query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	url := c.endpoint
	if url == "" {
		url = fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.shopDomain, c.apiVersion)
	}

	reqBody := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			c.logger.Warn("retrying shopify request",
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
			time.Sleep(time.Duration(attempt) * c.backoff)
		}

		resp, retry, err := c.doRequest(url, jsonData)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retry {
			return nil, err
		}
	}

	return nil, lastErr
}

// doRequest performs one HTTP round trip. The second return value reports
// whether the failure is worth retrying (timeout or rate limit).
func (c *Client) doRequest(url string, jsonData []byte) (*GraphQLResponse, bool, error) {
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		netErr := &apperrors.ErrNetwork{Op: "shopify graphql request", Err: err}
		if isTimeout(err) {
			return nil, true, netErr
		}
		return nil, false, netErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, &apperrors.ErrNetwork{Op: "read shopify response", Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, &apperrors.ErrAPI{Status: resp.StatusCode, Message: "rate limited"}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, &apperrors.ErrAPI{Status: resp.StatusCode, Message: string(body)}
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, false, &apperrors.ErrAPI{Message: fmt.Sprintf("invalid JSON response: %v", err)}
	}

	if len(graphQLResp.Errors) > 0 {
		errorMessages := make([]string, len(graphQLResp.Errors))
		for i, gqlErr := range graphQLResp.Errors {
			errorMessages[i] = gqlErr.Message
		}
		return nil, false, &apperrors.ErrAPI{Message: strings.Join(errorMessages, "; ")}
	}

	return &graphQLResp, false, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
