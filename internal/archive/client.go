// Package archive provides the HTTP client for the remote archive API.
// Every exported method performs exactly one authenticated request and
// returns either a decoded domain value or a classified *Error.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sudandigitalarchive/sda-mcp/internal/telemetry"
)

// DefaultBaseURL is the production archive endpoint.
const DefaultBaseURL = "https://api.sudandigitalarchive.com/sda-api"

const defaultTimeout = 30 * time.Second

// Client calls the archive API. It is safe for concurrent use; the only
// state is the immutable configuration established at construction.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every outbound call. Expiry is classified as a
// transport-origin error.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying transport (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds a client for the given base URL and API key. An empty
// baseURL selects the production endpoint.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// remoteError is the error body shape the archive API returns alongside
// non-2xx statuses. Best effort: plain-text bodies are used verbatim.
type remoteError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/api/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do issues one request and returns the response on any 2xx status.
// Failures are classified: request/transport errors become
// OriginTransport, non-2xx statuses become OriginStatus with the message
// taken from the body when parseable.
func (c *Client) do(ctx context.Context, operation, method, url string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Origin: OriginTransport, Operation: operation, Message: "marshal request body: " + err.Error()}
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, &Error{Origin: OriginTransport, Operation: operation, Message: err.Error()}
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Origin: OriginTransport, Operation: operation, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		telemetry.IncArchiveAPIError(operation, resp.StatusCode)
		return nil, &Error{
			Origin:     OriginStatus,
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    statusMessage(resp),
		}
	}
	return resp, nil
}

func statusMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(raw) > 0 {
		var re remoteError
		if json.Unmarshal(raw, &re) == nil {
			if re.Error != "" {
				return re.Error
			}
			if re.Message != "" {
				return re.Message
			}
		}
		if s := strings.TrimSpace(string(raw)); s != "" {
			return s
		}
	}
	return resp.Status
}

func decode(operation string, resp *http.Response, out any) error {
	defer resp.Body.Close()
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Origin: OriginDecode, Operation: operation, Message: err.Error()}
	}
	return nil
}

// ListAccessions fetches one page of public accessions.
func (c *Client) ListAccessions(ctx context.Context, q AccessionListQuery) (*AccessionPage, error) {
	return c.listAccessions(ctx, "list accessions", "/accessions", q)
}

// ListPrivateAccessions fetches one page of private accessions. The
// visibility scope is selected server-side by the dedicated endpoint so
// remote pagination stays correct.
func (c *Client) ListPrivateAccessions(ctx context.Context, q AccessionListQuery) (*AccessionPage, error) {
	return c.listAccessions(ctx, "list private accessions", "/accessions/private", q)
}

func (c *Client) listAccessions(ctx context.Context, operation, path string, q AccessionListQuery) (*AccessionPage, error) {
	resp, err := c.do(ctx, operation, http.MethodGet, c.endpoint(path, accessionQuery(q)), nil)
	if err != nil {
		return nil, err
	}
	var page AccessionPage
	if err := decode(operation, resp, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAccession retrieves a single public accession by id.
func (c *Client) GetAccession(ctx context.Context, id string) (*AccessionDetail, error) {
	return c.getAccession(ctx, "get accession", "/accessions/"+url.PathEscape(id))
}

// GetPrivateAccession retrieves a single private accession by id.
func (c *Client) GetPrivateAccession(ctx context.Context, id string) (*AccessionDetail, error) {
	return c.getAccession(ctx, "get private accession", "/accessions/private/"+url.PathEscape(id))
}

func (c *Client) getAccession(ctx context.Context, operation, path string) (*AccessionDetail, error) {
	resp, err := c.do(ctx, operation, http.MethodGet, c.endpoint(path, nil), nil)
	if err != nil {
		return nil, err
	}
	var detail AccessionDetail
	if err := decode(operation, resp, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateAccession applies a patch to an accession and returns the
// updated record. The patch carries only caller-specified fields.
func (c *Client) UpdateAccession(ctx context.Context, id string, patch AccessionPatch) (*AccessionDetail, error) {
	const operation = "update accession"
	resp, err := c.do(ctx, operation, http.MethodPut, c.endpoint("/accessions/"+url.PathEscape(id), nil), patch)
	if err != nil {
		return nil, err
	}
	var detail AccessionDetail
	if err := decode(operation, resp, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListSubjects fetches one page of metadata subjects.
func (c *Client) ListSubjects(ctx context.Context, q SubjectListQuery) (*SubjectPage, error) {
	const operation = "list subjects"
	resp, err := c.do(ctx, operation, http.MethodGet, c.endpoint("/metadata-subjects", subjectQuery(q)), nil)
	if err != nil {
		return nil, err
	}
	var page SubjectPage
	if err := decode(operation, resp, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateSubject creates a metadata subject and returns the record the
// archive assigned, including its identifier.
func (c *Client) CreateSubject(ctx context.Context, in SubjectInput) (*Subject, error) {
	const operation = "create subject"
	resp, err := c.do(ctx, operation, http.MethodPost, c.endpoint("/metadata-subjects", nil), in)
	if err != nil {
		return nil, err
	}
	var subject Subject
	if err := decode(operation, resp, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// DeleteSubject removes a metadata subject. A remote not-found surfaces
// as a status error; deletion is never treated as vacuously successful.
func (c *Client) DeleteSubject(ctx context.Context, id string) error {
	const operation = "delete subject"
	resp, err := c.do(ctx, operation, http.MethodDelete, c.endpoint("/metadata-subjects/"+url.PathEscape(id), nil), nil)
	if err != nil {
		return err
	}
	return decode(operation, resp, nil)
}

// String renders the client target for diagnostics. The API key is
// never included.
func (c *Client) String() string {
	return fmt.Sprintf("archive client for %s", c.baseURL)
}
