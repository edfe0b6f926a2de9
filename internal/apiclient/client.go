// Package apiclient calls the parkgate gate, report and support endpoints.
//
// A response whose body decodes as JSON is an application result regardless of
// its HTTP status: callers inspect Success. Network failures and bodies that are
// not JSON are returned as errors.
package apiclient

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client is a typed HTTP client for the parkgate API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the traced default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New returns a client for the API mounted at baseURL, e.g. http://localhost:8080/api.
// A non-positive timeout selects 15 seconds.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type clientIPKey struct{}

// WithClientIP returns a context whose requests carry ip in X-Forwarded-For. The
// portal uses it so the API throttles the browser's address, not the portal's.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the address stored by WithClientIP.
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Envelope carries the fields shared by every response.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type FaceResult struct {
	Envelope
	ResidentName string `json:"resident_name"`
	ResidentID   int64  `json:"resident_id"`
}

type BackupResult struct {
	Envelope
	ResidentName string `json:"resident_name"`
}

// GuestCheckinRequest is sent as {} when both fields are empty.
type GuestCheckinRequest struct {
	Plate string `json:"plate,omitempty"`
	// Image is a base64 encoded entry snapshot.
	Image string `json:"image,omitempty"`
}

type CheckinResult struct {
	Envelope
	TicketCode string `json:"ticket_code"`
}

type CheckoutResult struct {
	Envelope
	Hours  int64 `json:"hours"`
	Amount int64 `json:"amount"`
}

type Session struct {
	PlateNumber  string `json:"plate_number"`
	TicketCode   string `json:"ticket_code"`
	CheckinTime  string `json:"checkin_time"`
	CheckoutTime string `json:"checkout_time"`
	Amount       int64  `json:"amount"`
}

type DailyReport struct {
	Envelope
	Date          string    `json:"date"`
	ResidentCount int       `json:"resident_count"`
	GuestCount    int       `json:"guest_count"`
	Revenue       int64     `json:"revenue"`
	Sessions      []Session `json:"sessions,omitempty"`
}

type SupportResult struct {
	Envelope
}

// ResidentFace posts an empty request; the gate camera supplies the frame.
func (c *Client) ResidentFace(ctx context.Context) (*FaceResult, error) {
	var out FaceResult
	if err := c.do(ctx, http.MethodPost, "/gate/resident/face", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BackupLogin(ctx context.Context, code string) (*BackupResult, error) {
	var out BackupResult
	body := map[string]string{"backup_code": code}
	if err := c.do(ctx, http.MethodPost, "/gate/resident/backup-login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GuestCheckin(ctx context.Context, req GuestCheckinRequest) (*CheckinResult, error) {
	var out CheckinResult
	if err := c.do(ctx, http.MethodPost, "/gate/guest/checkin", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GuestCheckout(ctx context.Context, ticketCode string) (*CheckoutResult, error) {
	var out CheckoutResult
	body := map[string]string{"ticket_code": ticketCode}
	if err := c.do(ctx, http.MethodPost, "/gate/guest/checkout", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DailyReport(ctx context.Context, date string, detail bool) (*DailyReport, error) {
	q := url.Values{}
	q.Set("date", date)
	if detail {
		q.Set("detail", "1")
	} else {
		q.Set("detail", "0")
	}
	var out DailyReport
	if err := c.do(ctx, http.MethodGet, "/admin/report/daily?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitSupport(ctx context.Context, content string) (*SupportResult, error) {
	var out SupportResult
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, "/resident/support", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ip := ClientIP(ctx); ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response (status %d): %w", method, path, resp.StatusCode, err)
	}
	return nil
}
