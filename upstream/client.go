package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bookpage/models"
	"bookpage/utils"

	"go.uber.org/zap"
)

// BookingAPI is the consumed contract of the upstream booking store,
// business-scoped and keyed by slug. No authentication is required on this
// public booking surface.
type BookingAPI interface {
	GetBusiness(ctx context.Context, slug string) (*models.Business, error)
	GetDates(ctx context.Context, slug string, q DatesQuery) (map[string]bool, error)
	GetAvailability(ctx context.Context, slug string, q AvailabilityQuery) ([]models.Slot, error)
	CreateBooking(ctx context.Context, slug string, draft models.BookingDraft) (*models.Booking, error)
	GetBooking(ctx context.Context, slug, bookingID string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, slug, bookingID string, update BookingUpdate) (*models.Booking, error)
	CancelBooking(ctx context.Context, slug, bookingID string) (*models.Booking, error)
}

// DatesQuery selects the lookahead window for GET /book/{slug}/dates.
type DatesQuery struct {
	ServiceID string
	PartySize int
	Days      int
}

// AvailabilityQuery selects a single date's slots for GET /book/{slug}/availability.
type AvailabilityQuery struct {
	Date      string
	ServiceID string
	StaffID   string
	PartySize int
}

// BookingUpdate is the reschedule payload for PUT /book/{slug}/booking/{id}.
type BookingUpdate struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Client is the HTTP implementation of BookingAPI.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a BookingAPI client against the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetBusiness(ctx context.Context, slug string) (*models.Business, error) {
	var biz models.Business
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/book/%s", url.PathEscape(slug)), nil, &biz); err != nil {
		return nil, err
	}
	biz.Slug = slug
	return &biz, nil
}

func (c *Client) GetDates(ctx context.Context, slug string, q DatesQuery) (map[string]bool, error) {
	vals := url.Values{}
	if q.ServiceID != "" {
		vals.Set("serviceId", q.ServiceID)
	}
	if q.PartySize > 0 {
		vals.Set("partySize", strconv.Itoa(q.PartySize))
	}
	if q.Days > 0 {
		vals.Set("days", strconv.Itoa(q.Days))
	}

	var out struct {
		Dates map[string]bool `json:"dates"`
	}
	path := fmt.Sprintf("/book/%s/dates?%s", url.PathEscape(slug), vals.Encode())
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Dates, nil
}

func (c *Client) GetAvailability(ctx context.Context, slug string, q AvailabilityQuery) ([]models.Slot, error) {
	vals := url.Values{}
	vals.Set("date", q.Date)
	if q.ServiceID != "" {
		vals.Set("serviceId", q.ServiceID)
	}
	if q.StaffID != "" {
		vals.Set("staffId", q.StaffID)
	}
	if q.PartySize > 0 {
		vals.Set("partySize", strconv.Itoa(q.PartySize))
	}

	var out struct {
		Slots []models.Slot `json:"slots"`
	}
	path := fmt.Sprintf("/book/%s/availability?%s", url.PathEscape(slug), vals.Encode())
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

func (c *Client) CreateBooking(ctx context.Context, slug string, draft models.BookingDraft) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/book/%s/create", url.PathEscape(slug))
	if err := c.do(ctx, http.MethodPost, path, draft, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) GetBooking(ctx context.Context, slug, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/book/%s/booking/%s", url.PathEscape(slug), url.PathEscape(bookingID))
	if err := c.do(ctx, http.MethodGet, path, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) UpdateBooking(ctx context.Context, slug, bookingID string, update BookingUpdate) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/book/%s/booking/%s", url.PathEscape(slug), url.PathEscape(bookingID))
	if err := c.do(ctx, http.MethodPut, path, update, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CancelBooking(ctx context.Context, slug, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/book/%s/booking/%s", url.PathEscape(slug), url.PathEscape(bookingID))
	if err := c.do(ctx, http.MethodDelete, path, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// do performs one request against the upstream API and decodes the JSON
// response into out. Non-2xx responses are converted into the typed error
// taxonomy, carrying the upstream "detail" string verbatim.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	logger := utils.GetLogger()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Warn("upstream request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return NewNetworkError("The booking service is unreachable. Please try again.")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Warn("upstream response decode failed", zap.String("path", path), zap.Error(err))
		return NewNetworkError("The booking service returned an unreadable response.")
	}
	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	detail := readDetail(resp)

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if detail == "" {
			detail = "The submitted booking details were rejected."
		}
		return NewValidationError(detail)
	case http.StatusNotFound:
		if detail == "" {
			detail = "Booking not found."
		}
		return NewNotFoundError(detail)
	case http.StatusConflict:
		if detail == "" {
			detail = "That time is no longer available. Please pick another slot."
		}
		return NewConflictError(detail)
	default:
		if detail == "" {
			detail = fmt.Sprintf("The booking service returned status %d.", resp.StatusCode)
		}
		return NewNetworkError(detail)
	}
}

func readDetail(resp *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return ""
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Detail
}
