package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fakestore-sync/internal/domain"
)

// Client fetches the candidate product list from the external catalog in a
// single call. No paging, no authentication; a failed fetch is reported as
// is and aborts whatever triggered it.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// catalogItem mirrors the external product schema.
type catalogItem struct {
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

// FetchAll retrieves every product the catalog exposes, mapped to wire form.
func (c *Client) FetchAll(ctx context.Context) ([]domain.ProductPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog products: unexpected status %d", resp.StatusCode)
	}

	var items []catalogItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog products: %w", err)
	}

	payloads := make([]domain.ProductPayload, 0, len(items))
	for _, item := range items {
		desc := item.Description
		price := item.Price
		image := item.Image
		payloads = append(payloads, domain.ProductPayload{
			Name:        item.Title,
			Category:    item.Category,
			Description: &desc,
			Price:       &price,
			Image:       &image,
		})
	}
	c.logger.Debug("catalog products fetched", zap.Int("count", len(payloads)))
	return payloads, nil
}
