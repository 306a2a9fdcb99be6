package points

import (
	"context"
	"errors"
	"testing"

	"github.com/limloop/limloop/internal/constants"
	"github.com/limloop/limloop/internal/models"
	"github.com/limloop/limloop/internal/storage"
)

type fakeStorage struct {
	storage.Storage
	orders       map[int64]*models.Order
	types        map[string]*models.MaterialType
	balances     map[int64]*models.PointsBalance
	typesBroken  bool
	finishFails  int
	finishCalled int
}

func (f *fakeStorage) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	return f.orders[id], nil
}

func (f *fakeStorage) UpdateOrderStatus(ctx context.Context, id int64, st string) error {
	f.orders[id].Status = st
	return nil
}

func (f *fakeStorage) GetTypeByName(ctx context.Context, name string) (*models.MaterialType, error) {
	if f.typesBroken {
		return nil, errors.New("db down")
	}
	return f.types[name], nil
}

func (f *fakeStorage) FinishOrder(ctx context.Context, id int64, uid int64, points int) error {
	f.finishCalled++
	if f.finishFails > 0 {
		f.finishFails--
		return errors.New("db down")
	}
	f.orders[id].Status = constants.StatusProcessedOrder
	f.orders[id].Points = points
	f.balances[uid].Current += points
	return nil
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		orders: map[int64]*models.Order{
			1: {
				ID:         1,
				CustomerID: 42,
				Status:     constants.StatusPendingOrder,
				Items: []models.OrderItem{
					{TypeName: "Nhựa", Quantity: 2},
					{TypeName: "Giấy", Quantity: 3},
				},
			},
		},
		types: map[string]*models.MaterialType{
			"Nhựa": {ID: 1, Name: "Nhựa", PointsPerKg: 10},
			"Giấy": {ID: 2, Name: "Giấy", PointsPerKg: 5},
		},
		balances: map[int64]*models.PointsBalance{
			42: {UserID: 42, Current: 100, Redeemed: 20},
		},
	}
}

func TestProcessOrder(t *testing.T) {
	s := newFakeStorage()
	e := NewEvaluator(s, 1, 1, 1, 10, nil)

	processed := e.ProcessOrder(context.Background(), 1, 42)
	if !processed {
		t.Fatal("ProcessOrder() = false, want true")
	}
	order := s.orders[1]
	if order.Status != constants.StatusProcessedOrder {
		t.Errorf("order status = %q, want processed", order.Status)
	}
	// 2kg * 10 + 3kg * 5
	if order.Points != 35 {
		t.Errorf("order points = %d, want 35", order.Points)
	}
	balance := s.balances[42]
	if balance.Current != 135 {
		t.Errorf("balance current = %d, want 135", balance.Current)
	}
	if balance.Redeemed != 20 {
		t.Errorf("balance redeemed = %d, want untouched 20", balance.Redeemed)
	}
}

func TestProcessOrderUnknownType(t *testing.T) {
	s := newFakeStorage()
	s.orders[1].Items = append(s.orders[1].Items, models.OrderItem{TypeName: "Kim loại lạ", Quantity: 1})
	e := NewEvaluator(s, 1, 1, 1, 10, nil)

	processed := e.ProcessOrder(context.Background(), 1, 42)
	if !processed {
		t.Fatal("ProcessOrder() = false, want true for invalid order")
	}
	if s.orders[1].Status != constants.StatusInvalidOrder {
		t.Errorf("order status = %q, want invalid", s.orders[1].Status)
	}
	if s.balances[42].Current != 100 {
		t.Errorf("balance current = %d, invalid order must not be credited", s.balances[42].Current)
	}
}

func TestProcessOrderStorageFailure(t *testing.T) {
	s := newFakeStorage()
	s.typesBroken = true
	e := NewEvaluator(s, 1, 1, 1, 10, nil)

	if processed := e.ProcessOrder(context.Background(), 1, 42); processed {
		t.Error("ProcessOrder() = true, want false so the order is retried later")
	}
	if s.balances[42].Current != 100 {
		t.Errorf("balance current = %d, failed evaluation must not be credited", s.balances[42].Current)
	}
}

func TestProcessOrderCreditRetriedAfterFailure(t *testing.T) {
	s := newFakeStorage()
	s.finishFails = 1
	e := NewEvaluator(s, 1, 1, 1, 10, nil)

	if processed := e.ProcessOrder(context.Background(), 1, 42); processed {
		t.Fatal("ProcessOrder() = true, want false when the credit fails")
	}
	if s.orders[1].Status != constants.StatusProcessingOrder {
		t.Fatalf("order status = %q, want processing so the retry can finish it", s.orders[1].Status)
	}
	if s.balances[42].Current != 100 {
		t.Fatalf("balance current = %d, failed credit must leave the balance untouched", s.balances[42].Current)
	}

	if processed := e.ProcessOrder(context.Background(), 1, 42); !processed {
		t.Fatal("ProcessOrder() retry = false, want true once storage recovers")
	}
	if s.orders[1].Status != constants.StatusProcessedOrder {
		t.Errorf("order status after retry = %q, want processed", s.orders[1].Status)
	}
	if s.balances[42].Current != 135 {
		t.Errorf("balance current after retry = %d, want 135", s.balances[42].Current)
	}
	if s.finishCalled != 2 {
		t.Errorf("finish calls = %d, want 2", s.finishCalled)
	}
}

func TestProcessOrderAlreadyProcessed(t *testing.T) {
	s := newFakeStorage()
	s.orders[1].Status = constants.StatusProcessedOrder
	s.orders[1].Points = 35
	e := NewEvaluator(s, 1, 1, 1, 10, nil)

	if processed := e.ProcessOrder(context.Background(), 1, 42); !processed {
		t.Fatal("ProcessOrder() = false, want true for already processed order")
	}
	if s.balances[42].Current != 100 {
		t.Errorf("balance current = %d, processed order must not be credited twice", s.balances[42].Current)
	}
	if s.finishCalled != 0 {
		t.Errorf("finish calls = %d, want 0 for already processed order", s.finishCalled)
	}
}
