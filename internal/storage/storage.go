package storage

import (
	"context"
	"errors"

	"github.com/limloop/limloop/internal/models"
)

var (
	ErrInsufficientPoints = errors.New("not enough points on balance")
	ErrRewardOutOfStock   = errors.New("reward is out of stock")
)

type Storage interface {
	InitStorage(ctx context.Context) error
	DBClose() error

	AddUser(ctx context.Context, user *models.User) (int64, error)
	IsEmailFree(ctx context.Context, email string) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdateUserPassword(ctx context.Context, id int64, pwdHash string) error

	AddBalance(ctx context.Context, balance *models.PointsBalance) error
	GetBalanceByUserID(ctx context.Context, uid int64) (*models.PointsBalance, error)

	GetTypes(ctx context.Context) ([]models.MaterialType, error)
	GetTypeByID(ctx context.Context, id int64) (*models.MaterialType, error)
	GetTypeByName(ctx context.Context, name string) (*models.MaterialType, error)

	GetCenters(ctx context.Context) ([]models.Center, error)
	GetCenterByID(ctx context.Context, id int64) (*models.Center, error)

	AddOrder(ctx context.Context, o *models.Order) (int64, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrders(ctx context.Context, uid int64) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, st string) error
	// FinishOrder stores the evaluated points, marks the order processed and
	// credits the customer's balance in a single transaction, so a retried
	// order is either fully finished or untouched.
	FinishOrder(ctx context.Context, id int64, uid int64, points int) error

	AddOrderDelayed(ctx context.Context, id int64, uid int64) error
	GetOrdersDelayed(ctx context.Context, lim int) ([]models.OrderDelayed, error)
	DeleteOrderDelayed(ctx context.Context, id int64) error

	GetRecycleStats(ctx context.Context, uid int64) ([]models.RecycleStat, error)

	GetRewards(ctx context.Context) ([]models.Reward, error)
	GetRewardByID(ctx context.Context, id int64) (*models.Reward, error)
	// RedeemReward deducts the cost from the balance, decrements the reward
	// stock and records the redemption in a single transaction. Returns
	// ErrInsufficientPoints or ErrRewardOutOfStock when the conditional
	// updates match no row.
	RedeemReward(ctx context.Context, redemption *models.Redemption) error
	GetRedemptions(ctx context.Context, uid int64) ([]models.Redemption, error)
}
