package genai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
)

type ClientOptions struct {
	// https://generativelanguage.googleapis.com/v1beta
	BaseURL string
	ApiKey  string
	Headers map[string]string

	Transport *http.Client
}

// Client is a minimal Gemini generateContent client.
type Client struct {
	opts *ClientOptions
}

func NewClient(opts *ClientOptions) *Client {
	if opts.Transport == nil {
		opts.Transport = http.DefaultClient
	}

	if opts.BaseURL == "" {
		opts.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	return &Client{opts: opts}
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// GenerateContent sends a single-turn prompt and returns the concatenated
// candidate text.
func (c *Client) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	// Format: https://generativelanguage.googleapis.com/v1beta/models/{model}:generateContent
	if model == "" {
		model = "gemini-2.0-flash"
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.opts.BaseURL, model)

	payload, err := sonic.Marshal(&generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.opts.ApiKey != "" {
		// Gemini API uses query parameter for API key
		q := req.URL.Query()
		q.Set("key", c.opts.ApiKey)
		req.URL.RawQuery = q.Encode()
	}
	for k, v := range c.opts.Headers {
		req.Header.Set(k, v)
	}

	res, err := c.opts.Transport.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var response generateResponse
	if err := sonic.ConfigDefault.NewDecoder(res.Body).Decode(&response); err != nil {
		return "", err
	}

	if response.Error != nil {
		return "", fmt.Errorf("gemini API error: %s (code: %d, status: %s)", response.Error.Message, response.Error.Code, response.Error.Status)
	}

	var sb strings.Builder
	for _, candidate := range response.Candidates {
		for _, p := range candidate.Content.Parts {
			sb.WriteString(p.Text)
		}
	}

	if sb.Len() == 0 {
		return "", errors.New("gemini API returned an empty response")
	}

	return sb.String(), nil
}
