package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"posdesk/model"
)

// Endpoint paths on the hosted POS API.
const (
	transactionsPath = "save_transaction.php"
	menuPath         = "get_menu.php"
	itemSavePath     = "add_item.php"
	loginPath        = "login.php"
)

// Client talks to the hosted POS API. Every call is a single attempt; retry
// policy, if any, belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// getData performs a GET and decodes the {data: [...]} envelope into out.
func (c *Client) getData(ctx context.Context, path string, query url.Values, out any) error {
	u := c.endpoint(path, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{URL: u, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{URL: u, Status: resp.StatusCode}
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &FetchError{URL: u, Err: err}
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return &ShapeError{URL: u}
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &ShapeError{URL: u, Err: err}
	}
	return nil
}

// FetchTransactions returns the raw, unfiltered transaction list. Scope
// filtering happens in the sync coordinator.
func (c *Client) FetchTransactions(ctx context.Context) ([]model.Transaction, error) {
	var txs []model.Transaction
	if err := c.getData(ctx, transactionsPath, nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// FetchMenu returns one hotel's menu collection.
func (c *Client) FetchMenu(ctx context.Context, hotel string) ([]model.MenuItem, error) {
	query := url.Values{}
	query.Set("hotel_name", hotel)
	query.Set("menutype", "ac")

	var items []model.MenuItem
	if err := c.getData(ctx, menuPath, query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveItems upserts menu items (or overwrites stock only, depending on the
// request flags). A response with success=false is a WriteError.
func (c *Client) SaveItems(ctx context.Context, saveReq model.SaveItemsRequest) error {
	u := c.endpoint(itemSavePath, nil)

	body, err := json.Marshal(saveReq)
	if err != nil {
		return &WriteError{URL: u, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return &WriteError{URL: u, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &WriteError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &WriteError{URL: u, Status: resp.StatusCode, Message: result.Message}
	}
	if decodeErr != nil {
		return &WriteError{URL: u, Err: decodeErr}
	}
	if !result.Success {
		return &WriteError{URL: u, Message: result.Message}
	}
	return nil
}

// Login authenticates the operator against the remote API. A response with
// success=false is a WriteError carrying the server's message.
func (c *Client) Login(ctx context.Context, username, password string) (model.LoginResult, error) {
	u := c.endpoint(loginPath, nil)

	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return model.LoginResult{}, &WriteError{URL: u, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return model.LoginResult{}, &WriteError{URL: u, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.LoginResult{}, &WriteError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	var result model.LoginResult
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &WriteError{URL: u, Status: resp.StatusCode, Message: result.Message}
	}
	if decodeErr != nil {
		return result, &WriteError{URL: u, Err: decodeErr}
	}
	if !result.Success {
		return result, &WriteError{URL: u, Message: result.Message}
	}
	return result, nil
}
