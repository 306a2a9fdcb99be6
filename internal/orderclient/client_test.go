package orderclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/limloop/limloop/internal/constants"
	"github.com/limloop/limloop/internal/models"
)

type staticSessionStore struct {
	session *Session
	err     error
}

func (s *staticSessionStore) Session(ctx context.Context) (*Session, error) {
	return s.session, s.err
}

func testMaterials() []SelectedMaterial {
	return []SelectedMaterial{
		{TypeID: 1, Title: "Nhựa", WeightKg: 2},
		{TypeID: 2, Title: "Giấy", WeightKg: 3},
	}
}

func testCenter() *models.Center {
	return &models.Center{
		ID:      7,
		Name:    "LimLoop",
		Address: "140/9/4 đường số 12, P.Bình Hưng",
		WorkingTimes: []models.WorkingTime{
			{Day: "Monday-Friday", StartTime: "08:00", EndTime: "17:00"},
		},
	}
}

func TestSubmitWithoutSession(t *testing.T) {
	tests := []struct {
		name  string
		store *staticSessionStore
	}{
		{"store error", &staticSessionStore{err: errors.New("storage unavailable")}},
		{"nil session", &staticSessionStore{}},
		{"no user id", &staticSessionStore{session: &Session{AccessToken: "token"}}},
		{"no token", &staticSessionStore{session: &Session{UserID: 42}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
			}))
			defer srv.Close()

			c := New(srv.URL, tt.store)
			_, err := c.Submit(context.Background(), DraftInput{
				Materials:      testMaterials(),
				DeliveryMethod: constants.TransportSelfDelivery,
				Center:         testCenter(),
			})
			if !errors.Is(err, ErrAuthenticationRequired) {
				t.Fatalf("Submit() error = %v, want ErrAuthenticationRequired", err)
			}
			if calls != 0 {
				t.Errorf("network calls = %d, want 0", calls)
			}
		})
	}
}

func TestSubmitPickup(t *testing.T) {
	var gotDraft models.OrderDraft
	var gotAuth string
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotAuth = r.Header.Get(constants.HeaderToken)
		if r.URL.Path != "/api/v1/orders/material" {
			t.Errorf("request path = %q, want /api/v1/orders/material", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotDraft); err != nil {
			t.Fatalf("decoding draft failed: %v", err)
		}
		w.Header().Set("Content-Type", constants.CntTypeHeaderJSON)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":99,"points":25}`))
	}))
	defer srv.Close()

	receiveDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	c := New(srv.URL, &staticSessionStore{session: &Session{UserID: 42, AccessToken: "token"}})
	confirmation, err := c.Submit(context.Background(), DraftInput{
		Materials:      testMaterials(),
		DeliveryMethod: constants.TransportPickup,
		Sender:         Sender{Name: "Mr Recycle", Phone: "0123456789", Address: "12 Nguyễn Trãi"},
		ReceiveDate:    receiveDate,
		TimeSlot:       TimeSlotMorning,
		Note:           "gọi trước khi tới",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("network calls = %d, want exactly 1", calls)
	}
	if gotAuth != "Bearer token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer token")
	}
	if gotDraft.CustomerID != 42 {
		t.Errorf("draft customerId = %d, want 42", gotDraft.CustomerID)
	}
	if gotDraft.Status != "pending" {
		t.Errorf("draft status = %q, want pending", gotDraft.Status)
	}
	if gotDraft.Schedule != "8h-12h" {
		t.Errorf("draft schedule = %q, want 8h-12h", gotDraft.Schedule)
	}
	wantItems := []models.OrderItem{{TypeName: "Nhựa", Quantity: 2}, {TypeName: "Giấy", Quantity: 3}}
	if len(gotDraft.Items) != len(wantItems) {
		t.Fatalf("draft items = %v, want %v", gotDraft.Items, wantItems)
	}
	for i, item := range wantItems {
		if gotDraft.Items[i] != item {
			t.Errorf("draft item %d = %v, want %v", i, gotDraft.Items[i], item)
		}
	}
	if gotDraft.ReceiveDate == nil || !gotDraft.ReceiveDate.Equal(receiveDate) {
		t.Errorf("draft receiveDate = %v, want %v", gotDraft.ReceiveDate, receiveDate)
	}
	if confirmation.OrderID != 99 {
		t.Errorf("confirmation orderID = %d, want 99", confirmation.OrderID)
	}
	if confirmation.TotalPoints != "25" {
		t.Errorf("confirmation totalPoints = %q, want %q", confirmation.TotalPoints, "25")
	}
	if confirmation.TotalWeight != "5" {
		t.Errorf("confirmation totalWeight = %q, want %q", confirmation.TotalWeight, "5")
	}
	if confirmation.Sender == nil || confirmation.Sender.Name != "Mr Recycle" {
		t.Errorf("confirmation sender = %+v, want the pickup sender block", confirmation.Sender)
	}
	if confirmation.PickupLocation != "" {
		t.Errorf("confirmation pickupLocation = %q, want empty for pickup", confirmation.PickupLocation)
	}
}

func TestSubmitSelfDelivery(t *testing.T) {
	var gotDraft models.OrderDraft
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotDraft)
		w.Header().Set("Content-Type", constants.CntTypeHeaderJSON)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":100}`))
	}))
	defer srv.Close()

	submittedAt := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	c := New(srv.URL, &staticSessionStore{session: &Session{UserID: 42, AccessToken: "token"}})
	c.now = func() time.Time { return submittedAt }

	confirmation, err := c.Submit(context.Background(), DraftInput{
		Materials:      testMaterials(),
		DeliveryMethod: constants.TransportSelfDelivery,
		Center:         testCenter(),
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if gotDraft.CenterID != 7 {
		t.Errorf("draft centerId = %d, want 7", gotDraft.CenterID)
	}
	if gotDraft.Schedule != "" {
		t.Errorf("draft schedule = %q, want empty for self delivery without slot", gotDraft.Schedule)
	}
	if gotDraft.ReceiveDate == nil || !gotDraft.ReceiveDate.Equal(submittedAt) {
		t.Errorf("draft receiveDate = %v, want submission moment %v", gotDraft.ReceiveDate, submittedAt)
	}
	// points absent from the response falls back to "0"
	if confirmation.TotalPoints != "0" {
		t.Errorf("confirmation totalPoints = %q, want %q", confirmation.TotalPoints, "0")
	}
	if confirmation.PickupLocation != "LimLoop: 140/9/4 đường số 12, P.Bình Hưng" {
		t.Errorf("confirmation pickupLocation = %q", confirmation.PickupLocation)
	}
	if confirmation.WorkingTimes != "T2 - T6: 08:00 - 17:00" {
		t.Errorf("confirmation workingTimes = %q", confirmation.WorkingTimes)
	}
	if confirmation.Sender != nil {
		t.Errorf("confirmation sender = %+v, want nil for self delivery", confirmation.Sender)
	}
}

func TestSubmitServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer srv.Close()

	c := New(srv.URL, &staticSessionStore{session: &Session{UserID: 42, AccessToken: "token"}})
	_, err := c.Submit(context.Background(), DraftInput{
		Materials:      testMaterials(),
		DeliveryMethod: constants.TransportSelfDelivery,
		Center:         testCenter(),
	})
	var submissionErr *OrderSubmissionError
	if !errors.As(err, &submissionErr) {
		t.Fatalf("Submit() error = %v, want *OrderSubmissionError", err)
	}
	if submissionErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("submission error status = %d, want 500", submissionErr.StatusCode)
	}
}

func TestSubmitTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, &staticSessionStore{session: &Session{UserID: 42, AccessToken: "token"}})
	_, err := c.Submit(context.Background(), DraftInput{
		Materials:      testMaterials(),
		DeliveryMethod: constants.TransportSelfDelivery,
		Center:         testCenter(),
	})
	var submissionErr *OrderSubmissionError
	if !errors.As(err, &submissionErr) {
		t.Fatalf("Submit() error = %v, want *OrderSubmissionError", err)
	}
	if submissionErr.Unwrap() == nil {
		t.Error("submission error should wrap the transport error")
	}
}
