package points

import (
	"context"
	"time"

	"github.com/limloop/limloop/internal/constants"
	"github.com/limloop/limloop/internal/logger"
	"github.com/limloop/limloop/internal/models"
	"github.com/limloop/limloop/internal/storage"
	"go.uber.org/zap"
)

// Evaluator computes reward points for submitted orders in the background.
// Rates come from the material types table; orders that could not be
// evaluated are parked in the delayed table and retried on a ticker.
type Evaluator struct {
	storage               storage.Storage
	workers               int
	workersDelayed        int
	delay                 int
	delayOrdersQueryLimit int
	orderChan             <-chan *models.Order
}

func NewEvaluator(s storage.Storage, w int, wd int, d int, doqlim int, ch <-chan *models.Order) *Evaluator {
	return &Evaluator{storage: s, workers: w, workersDelayed: wd, delay: d, delayOrdersQueryLimit: doqlim, orderChan: ch}
}

func (e *Evaluator) Start(ctx context.Context) {
	for i := 0; i < e.workers; i++ {
		go e.DealOrders(ctx, i)
	}
	for i := 0; i < e.workersDelayed; i++ {
		go e.DealOrdersDelayed(ctx, e.delay, e.delayOrdersQueryLimit, i)
	}
}

// Func to deal new orders
func (e *Evaluator) DealOrders(ctx context.Context, wid int) {
	logger.Log.Info("points evaluator worker started", zap.Int("id", wid))
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("points evaluator worker stopped by ctx", zap.Int("id", wid))
			return
		case order := <-e.orderChan:
			processed := e.ProcessOrder(ctx, order.ID, order.CustomerID)
			if !processed {
				err := e.storage.AddOrderDelayed(ctx, order.ID, order.CustomerID)
				if err != nil {
					logger.Log.Error("error adding order to delayed processing", zap.Int64("order", order.ID), zap.Error(err))
				}
			}
		}
	}
}

// Func to deal not processed, failed orders
func (e *Evaluator) DealOrdersDelayed(ctx context.Context, delay int, lim int, wid int) {
	logger.Log.Info("points evaluator worker for delayed orders started", zap.Int("id", wid))
	tick := time.NewTicker(time.Duration(delay) * time.Second)
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("points evaluator worker for delayed orders stopped by ctx", zap.Int("id", wid))
			return
		case <-tick.C:
			ordersDelayed, err := e.storage.GetOrdersDelayed(ctx, lim)
			if err != nil {
				logger.Log.Error("points evaluator worker get delayed orders error", zap.Error(err))
			}
			for _, order := range ordersDelayed {
				orderProcessed := e.ProcessOrder(ctx, order.OrderID, order.UserID)
				if orderProcessed {
					e.storage.DeleteOrderDelayed(ctx, order.OrderID)
				}
			}
		}
	}
}

// ProcessOrder evaluates a single order: points are the sum over items of
// quantity times the type's per-kg rate. An item with an unknown type name
// marks the whole order invalid without crediting anything. Returns false when
// the order should be retried later.
func (e *Evaluator) ProcessOrder(ctx context.Context, num int64, uid int64) (processed bool) {
	order, err := e.storage.GetOrderByID(ctx, num)
	if err != nil {
		logger.Log.Error("get order for evaluation failed", zap.Int64("order", num), zap.Error(err))
		return false
	}
	if order == nil {
		logger.Log.Error("order for evaluation not found", zap.Int64("order", num))
		return true
	}
	if order.Status != constants.StatusPendingOrder && order.Status != constants.StatusProcessingOrder {
		return true
	}
	if err := e.storage.UpdateOrderStatus(ctx, num, constants.StatusProcessingOrder); err != nil {
		logger.Log.Error("change status order error on evaluation start", zap.Int64("order", num), zap.Error(err))
		return false
	}
	orderPoints := 0
	for _, item := range order.Items {
		materialType, err := e.storage.GetTypeByName(ctx, item.TypeName)
		if err != nil {
			logger.Log.Error("get type for evaluation failed", zap.Int64("order", num), zap.String("type", item.TypeName), zap.Error(err))
			return false
		}
		if materialType == nil {
			logger.Log.Debug("order has unknown material type", zap.Int64("order", num), zap.String("type", item.TypeName))
			if err := e.storage.UpdateOrderStatus(ctx, num, constants.StatusInvalidOrder); err != nil {
				logger.Log.Error("change status order error - marking order invalid", zap.Int64("order", num), zap.Error(err))
				return false
			}
			return true
		}
		orderPoints += item.Quantity * materialType.PointsPerKg
	}
	// single transaction: order stays processing on failure so the retry can
	// still complete the credit, and never credits twice after success
	if err := e.storage.FinishOrder(ctx, num, uid, orderPoints); err != nil {
		logger.Log.Error("finish order error - crediting points failed", zap.Int64("order", num), zap.Error(err))
		return false
	}
	logger.Log.Debug("order evaluated", zap.Int64("order", num), zap.Int("points", orderPoints))
	return true
}
