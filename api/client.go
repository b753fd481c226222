package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/abbasza/contactctl/logger"
	"go.uber.org/zap"
)

var logg = logger.NewLogger()

// Error is the single error kind for every failed request. Callers can
// only tell failures apart by Status or by the message text.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// TokenSource supplies the current bearer credential, or "" when the
// client is not logged in.
type TokenSource func() string

// Client wraps the remote contact-manager REST API. It does not retry,
// does not set an explicit timeout & does not dedupe in-flight requests.
type Client struct {
	baseURL     string
	tokenSource TokenSource
	httpClient  *http.Client
	logg        *zap.SugaredLogger
}

func NewClient(baseURL string, tokenSource TokenSource) *Client {
	if tokenSource == nil {
		tokenSource = func() string { return "" }
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		tokenSource: tokenSource,
		httpClient:  &http.Client{},
		logg:        logg,
	}
}

// Get fetches path(with optional query params) & decodes the JSON
// response into out, if out is non-nil.
func (c *Client) Get(path string, params url.Values, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.buildURL(path, params), nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) Post(path string, body interface{}, out interface{}) error {
	return c.sendJSON(http.MethodPost, path, body, out)
}

func (c *Client) Put(path string, body interface{}, out interface{}) error {
	return c.sendJSON(http.MethodPut, path, body, out)
}

// Delete issues a DELETE request. 204 counts as success with no body.
func (c *Client) Delete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.buildURL(path, nil), nil)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (c *Client) sendJSON(method, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(method, c.buildURL(path, nil), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if token := c.tokenSource(); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logg.Debugf("%v %v -> %v", req.Method, req.URL.Path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) buildURL(path string, params url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	rawURL := c.baseURL + path
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	return rawURL
}

// readError extracts a human readable message from a failed response:
// JSON "message" field, then "error" field, then the raw body text, then
// a generic status-coded message. Backend error shapes vary by endpoint,
// so the whole fallback chain is load-bearing.
func readError(resp *http.Response) error {
	text := ""
	if body, err := ioutil.ReadAll(resp.Body); err == nil {
		text = strings.TrimSpace(string(body))
	}

	message := text

	parsed := struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}{}
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else if parsed.Error != "" {
			message = parsed.Error
		}
	}

	if message == "" {
		message = fmt.Sprintf("Request failed: %v", resp.StatusCode)
	}

	return &Error{Status: resp.StatusCode, Message: message}
}
