package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/faturo-inc/faturo/internal/application/subscription/usecases"
	"github.com/faturo-inc/faturo/internal/shared/config"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
)

// HTTPDirectory resolves subscribers against the customer directory service.
// Authentication is a static API key header between internal services.
type HTTPDirectory struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPDirectory(cfg config.DirectoryConfig) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout()},
	}
}

type subscriberResponseBody struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (d *HTTPDirectory) GetByID(ctx context.Context, id uint) (*usecases.Subscriber, error) {
	url := fmt.Sprintf("%s/v1/subscribers/%d", d.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if d.apiKey != "" {
		req.Header.Set("X-API-Key", d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError("subscriber not found")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("directory responded %d: %s", resp.StatusCode, raw)
	}

	var body subscriberResponseBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("failed to decode directory response: %w", err)
	}

	return &usecases.Subscriber{
		ID:    body.ID,
		Name:  body.Name,
		Email: body.Email,
	}, nil
}
