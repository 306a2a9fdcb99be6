package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/limloop/limloop/internal/constants"
	"github.com/limloop/limloop/internal/logger"
	"github.com/limloop/limloop/internal/models"
	"github.com/limloop/limloop/internal/storage"
	"go.uber.org/zap"
)

type orderItemRequest struct {
	TypeName string `json:"typeName" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type orderRequest struct {
	CustomerID  int64              `json:"customerId" validate:"required"`
	CenterID    int64              `json:"centerId"`
	Transport   string             `json:"transport" validate:"required,oneof=pickup selfDelivery"`
	Status      string             `json:"status" validate:"required,eq=pending"`
	Items       []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Note        string             `json:"note"`
	ReceiveDate *time.Time         `json:"receiveDate"`
	Schedule    string             `json:"schedule" validate:"omitempty,oneof=8h-12h 13h-17h"`
}

func OrderPostHandler(ctx context.Context, s storage.Storage, ch chan<- *models.Order) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if appType := r.Header.Get("Content-Type"); appType != constants.CntTypeHeaderJSON {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request Content-Type"))
			return
		}
		uid, ok := authorizedUID(w, r)
		if !ok {
			return
		}
		reqBody, err := io.ReadAll(r.Body)
		defer r.Body.Close()
		if err != nil {
			logger.Log.Error("order post handler error - body reading error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		var req orderRequest
		if err = json.Unmarshal(reqBody, &req); err != nil {
			logger.Log.Debug("order post handler error - body deserialization error", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request format"))
			return
		}
		if err = validate.Struct(req); err != nil {
			logger.Log.Debug("order post handler error - validation error", zap.Error(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte("Order format is incorrect"))
			return
		}
		if req.CustomerID != uid {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("Access denied"))
			return
		}
		if req.Transport == constants.TransportSelfDelivery {
			if req.CenterID == 0 {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte("Collection center is required for self delivery"))
				return
			}
			center, err := s.GetCenterByID(ctx, req.CenterID)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Internal Server Error"))
				return
			}
			if center == nil {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte("Collection center not found"))
				return
			}
		}
		totalWeight := 0
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			totalWeight += item.Quantity
			items = append(items, models.OrderItem{TypeName: item.TypeName, Quantity: item.Quantity})
		}
		order := models.Order{
			CustomerID:  uid,
			CenterID:    req.CenterID,
			Transport:   req.Transport,
			Status:      constants.StatusPendingOrder,
			Items:       items,
			Note:        req.Note,
			ReceiveDate: req.ReceiveDate,
			Schedule:    req.Schedule,
			TotalWeight: totalWeight,
			CreatedAt:   time.Now(),
		}
		if _, err = s.AddOrder(ctx, &order); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		// hand the order to the points evaluator workers
		ch <- &order
		writeJSON(w, http.StatusCreated, order)
	}
}

func OrdersGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := authorizedUID(w, r)
		if !ok {
			return
		}
		orders, err := s.GetOrders(ctx, uid)
		if err != nil {
			logger.Log.Error("orders get handler error - getting orders from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, orders)
	}
}

func OrderGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := authorizedUID(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		order, err := s.GetOrderByID(ctx, id)
		if err != nil {
			logger.Log.Error("order get handler error - getting order from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if order == nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Order not found"))
			return
		}
		if order.CustomerID != uid {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("Access denied"))
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}
