package demandas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// HTTPConfig configures the HTTP demandas client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to the live demandas service via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting the demandas API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("demandas: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// Counts implements dashboard.BadgeSource by querying the counters endpoint.
func (c *HTTPClient) Counts(ctx context.Context, viewer dashboard.ViewerContext, cardIDs []string) (map[string]int, error) {
	req := badgeRequest{
		UserID:     viewer.UserID,
		Department: viewer.Department,
		CardIDs:    cardIDs,
	}
	var resp badgeResponse
	if err := c.do(ctx, http.MethodPost, "/badges/query", req, &resp); err != nil {
		return nil, err
	}
	return resp.Counts, nil
}

// OriginBreakdown implements dashboard.OriginRepository via the origins endpoint.
func (c *HTTPClient) OriginBreakdown(ctx context.Context, query dashboard.OriginQuery) ([]dashboard.OriginCount, error) {
	req := originRequest{
		Period:     query.Period,
		Department: query.Viewer.Department,
	}
	var resp originResponse
	if err := c.do(ctx, http.MethodPost, "/origens/query", req, &resp); err != nil {
		return nil, err
	}
	return resp.toCounts(), nil
}

// InProgress implements dashboard.DemandFeed via the demandas endpoint.
func (c *HTTPClient) InProgress(ctx context.Context, viewer dashboard.ViewerContext, limit int) ([]dashboard.DemandItem, error) {
	req := demandRequest{
		UserID:     viewer.UserID,
		Department: viewer.Department,
		Limit:      limit,
	}
	var resp demandResponse
	if err := c.do(ctx, http.MethodPost, "/demandas/em-andamento", req, &resp); err != nil {
		return nil, err
	}
	return resp.toItems()
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("demandas: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("demandas: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("demandas: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("demandas: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("demandas: decode response: %w", err)
	}
	return nil
}

type badgeRequest struct {
	UserID     string   `json:"user_id"`
	Department string   `json:"department,omitempty"`
	CardIDs    []string `json:"card_ids"`
}

type badgeResponse struct {
	Counts map[string]int `json:"counts"`
}

type originRequest struct {
	Period     string `json:"period"`
	Department string `json:"department,omitempty"`
}

type originBucket struct {
	Origin string `json:"origin"`
	Count  int    `json:"count"`
}

type originResponse struct {
	Buckets []originBucket `json:"buckets"`
}

func (r originResponse) toCounts() []dashboard.OriginCount {
	counts := make([]dashboard.OriginCount, len(r.Buckets))
	for i, bucket := range r.Buckets {
		counts[i] = dashboard.OriginCount{Origin: bucket.Origin, Count: bucket.Count}
	}
	return counts
}

type demandRequest struct {
	UserID     string `json:"user_id"`
	Department string `json:"department,omitempty"`
	Limit      int    `json:"limit"`
}

type demandRow struct {
	Protocol string `json:"protocol"`
	Subject  string `json:"subject"`
	Status   string `json:"status"`
	Origin   string `json:"origin"`
	Updated  string `json:"updated_at"`
}

type demandResponse struct {
	Items []demandRow `json:"items"`
}

func (r demandResponse) toItems() ([]dashboard.DemandItem, error) {
	items := make([]dashboard.DemandItem, len(r.Items))
	for i, row := range r.Items {
		updated, err := time.Parse(time.RFC3339, row.Updated)
		if err != nil {
			return nil, fmt.Errorf("demandas: parse updated_at %q: %w", row.Updated, err)
		}
		items[i] = dashboard.DemandItem{
			Protocol: row.Protocol,
			Subject:  row.Subject,
			Status:   row.Status,
			Origin:   row.Origin,
			Updated:  updated,
		}
	}
	return items, nil
}
