package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/medhive/pharmacy-admin/internal/models"
)

const (
	loginPath          = "/api/v1/auth/login"
	bulkIngestPath     = "/api/v1/inventory/bulk"
	storeInventoryPath = "/api/v1/stores/%s/inventory"

	defaultAPITimeout = 10 * time.Second
)

var (
	ErrUnauthorized  = errors.New("pharmacy api: unauthorized")
	ErrStoreNotFound = errors.New("pharmacy api: store not found")
	ErrAPIError      = errors.New("pharmacy api error")
)

// PharmacyAPIClient is the thin wrapper around the remote pharmacy-inventory
// backend. It carries no business logic of its own: encode, decode, and map
// status codes onto the error taxonomy.
type PharmacyAPIClient struct {
	baseURL string
	token   string

	httpClient *http.Client
	// bulkClient has no client-level timeout: bulk ingestion runs under the
	// caller's per-chunk deadline, which is longer than ordinary requests.
	bulkClient *http.Client
}

func NewPharmacyAPIClient(baseURL string, timeout time.Duration) *PharmacyAPIClient {
	if timeout <= 0 {
		timeout = defaultAPITimeout
	}
	return &PharmacyAPIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		bulkClient: &http.Client{},
	}
}

// ForToken returns a copy of the client that authenticates requests with the
// given session token. The underlying HTTP clients are shared.
func (c *PharmacyAPIClient) ForToken(token string) *PharmacyAPIClient {
	cp := *c
	cp.token = token
	return &cp
}

// Login delegates phone/email sign-in to the remote auth service.
func (c *PharmacyAPIClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding login request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("%w: login returned status %d", ErrAPIError, resp.StatusCode)
	}

	var out models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}
	return &out, nil
}

// BulkIngest submits one chunk of inventory records for a store and returns
// the remote reconciliation counts. Implements BulkIngestor.
func (c *PharmacyAPIClient) BulkIngest(ctx context.Context, storeID string, items []models.InventoryRecord) (*models.BulkIngestResponse, error) {
	body, err := json.Marshal(models.BulkIngestRequest{StoreID: storeID, Items: items})
	if err != nil {
		return nil, fmt.Errorf("encoding bulk request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+bulkIngestPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.bulkClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("bulk ingest request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("%w: bulk ingest returned status %d", ErrAPIError, resp.StatusCode)
	}

	var out models.BulkIngestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding bulk response: %w", err)
	}
	return &out, nil
}

// StoreInventory fetches one page of a store's inventory.
func (c *PharmacyAPIClient) StoreInventory(ctx context.Context, storeID, search string, limit, offset int) (*models.StoreInventoryPage, error) {
	endpoint := fmt.Sprintf(c.baseURL+storeInventoryPath, url.PathEscape(storeID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := httpReq.URL.Query()
	if search != "" {
		q.Set("search", search)
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	httpReq.URL.RawQuery = q.Encode()
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("store inventory request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrStoreNotFound
	default:
		return nil, fmt.Errorf("%w: store inventory returned status %d", ErrAPIError, resp.StatusCode)
	}

	var out models.StoreInventoryPage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding store inventory response: %w", err)
	}
	return &out, nil
}

func (c *PharmacyAPIClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
