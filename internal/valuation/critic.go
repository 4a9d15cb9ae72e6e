package valuation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Critic submits an image plus rubric to an external scoring oracle
// and returns the oracle's raw reply text. Implementations must treat
// credentials as secret and never echo them in errors.
type Critic interface {
	Critique(ctx context.Context, image []byte, prompt string) (string, error)
}

// HTTPCriticConfig configures the critic endpoint and HTTP behavior.
type HTTPCriticConfig struct {
	URL              string
	Model            string
	CredentialSecret string
	HTTPClient       *http.Client
}

type httpCritic struct {
	cfg HTTPCriticConfig
}

// NewHTTPCritic builds a critic backed by an HTTP scoring endpoint.
func NewHTTPCritic(cfg HTTPCriticConfig) Critic {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &httpCritic{cfg: cfg}
}

func (c *httpCritic) Critique(ctx context.Context, image []byte, prompt string) (string, error) {
	endpoint := strings.TrimSpace(c.cfg.URL)
	credentialSecret := strings.TrimSpace(c.cfg.CredentialSecret)
	model := strings.TrimSpace(c.cfg.Model)
	if endpoint == "" {
		return "", fmt.Errorf("critic url is required")
	}
	if credentialSecret == "" {
		return "", fmt.Errorf("credential secret is required")
	}
	if len(image) == 0 {
		return "", fmt.Errorf("image is required")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is required")
	}

	requestBody, err := json.Marshal(map[string]any{
		"model": model,
		"input": prompt,
		"image": base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return "", fmt.Errorf("marshal critique request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build critique request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Credential material is sent only as an Authorization header and
	// is never echoed in errors or response payloads.
	req.Header.Set("Authorization", "Bearer "+credentialSecret)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("critique request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read critique error body: %w", err)
		}
		return "", fmt.Errorf("critique request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode critique response: %w", err)
	}
	outputText := strings.TrimSpace(payload.OutputText)
	if outputText == "" {
		for _, item := range payload.Output {
			for _, content := range item.Content {
				if strings.TrimSpace(content.Text) != "" {
					outputText = strings.TrimSpace(content.Text)
					break
				}
			}
			if outputText != "" {
				break
			}
		}
	}
	if outputText == "" {
		return "", fmt.Errorf("critique response missing output text")
	}
	return outputText, nil
}
