package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client is a thin REST client for the Generative Language API. It performs a
// single synchronous generateContent call per request; no retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				TLSHandshakeTimeout: 5 * time.Second,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     30 * time.Second,
			},
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// StatusError is a non-2xx reply from the generation API. The raw body is kept
// for logging; handlers must not echo it to clients in production.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini API returned status %d: %s", e.StatusCode, e.Body)
}

// Generate posts contents to the model's generateContent endpoint. The API key
// travels as a query parameter, per the REST contract.
func (c *Client) Generate(ctx context.Context, contents []Content, cfg GenerationConfig) (*GenerateResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents:         contents,
		GenerationConfig: cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to contact gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(resp.Body)
		log.Printf("Gemini API error: status=%d body=%s", resp.StatusCode, string(errBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}

	return &genResp, nil
}
