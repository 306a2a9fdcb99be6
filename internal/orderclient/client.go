package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/limloop/limloop/internal/constants"
	"github.com/limloop/limloop/internal/logger"
	"go.uber.org/zap"
)

// ErrAuthenticationRequired is returned before any network call when there is
// no usable session.
var ErrAuthenticationRequired = errors.New("authentication required")

// OrderSubmissionError wraps a transport failure or a non-2xx response from
// the order-creation endpoint.
type OrderSubmissionError struct {
	StatusCode int
	Err        error
}

func (e *OrderSubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("order submission failed: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("order submission failed: %v", e.Err)
}

func (e *OrderSubmissionError) Unwrap() error { return e.Err }

// Session identifies the signed-in customer. It is handed to the client
// explicitly instead of being read from ambient device storage.
type Session struct {
	UserID      int64
	AccessToken string
}

type SessionStore interface {
	Session(ctx context.Context) (*Session, error)
}

// Confirmation carries the parameters the confirmation screen renders after a
// successful submission.
type Confirmation struct {
	DeliveryMethod string
	TotalWeight    string
	OrderID        int64
	TotalPoints    string
	Sender         *Sender
	PickupLocation string
	WorkingTimes   string
}

type Client struct {
	baseURL string
	client  *http.Client
	session SessionStore
	now     func() time.Time
}

func New(baseURL string, store SessionStore) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		session: store,
		now:     time.Now,
	}
}

type orderResponse struct {
	ID     int64 `json:"id"`
	Points *int  `json:"points"`
}

// Submit assembles the order draft and posts it to the order-creation
// endpoint exactly once. No session means no network call at all. The caller
// may cancel an in-flight submission through ctx; there are no retries.
func (c *Client) Submit(ctx context.Context, in DraftInput) (*Confirmation, error) {
	sess, err := c.session.Session(ctx)
	if err != nil {
		return nil, ErrAuthenticationRequired
	}
	if sess == nil || sess.UserID == 0 || sess.AccessToken == "" {
		return nil, ErrAuthenticationRequired
	}
	draft, err := AssembleDraft(in, sess.UserID, c.now())
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/orders/material", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", constants.CntTypeHeaderJSON)
	req.Header.Set(constants.HeaderToken, constants.BearerPrefix+sess.AccessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Log.Error("order submission request failed", zap.Error(err))
		return nil, &OrderSubmissionError{Err: err}
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &OrderSubmissionError{StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Log.Error("order submission rejected", zap.Int("status", resp.StatusCode))
		return nil, &OrderSubmissionError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", respBody)}
	}
	var created orderResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, &OrderSubmissionError{StatusCode: resp.StatusCode, Err: err}
	}

	confirmation := &Confirmation{
		DeliveryMethod: in.DeliveryMethod,
		TotalWeight:    strconv.Itoa(TotalWeight(draft)),
		OrderID:        created.ID,
		TotalPoints:    "0",
	}
	if created.Points != nil {
		confirmation.TotalPoints = strconv.Itoa(*created.Points)
	}
	switch in.DeliveryMethod {
	case constants.TransportPickup:
		sender := in.Sender
		confirmation.Sender = &sender
	case constants.TransportSelfDelivery:
		confirmation.PickupLocation = fmt.Sprintf("%s: %s", in.Center.Name, in.Center.Address)
		confirmation.WorkingTimes = FormatWorkingTimes(in.Center.WorkingTimes)
	}
	return confirmation, nil
}
