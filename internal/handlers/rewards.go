package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/limloop/limloop/internal/logger"
	"github.com/limloop/limloop/internal/models"
	"github.com/limloop/limloop/internal/storage"
	"go.uber.org/zap"
)

func RewardsGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rewards, err := s.GetRewards(ctx)
		if err != nil {
			logger.Log.Error("rewards get handler error - getting rewards from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		writeJSON(w, http.StatusOK, rewards)
	}
}

func RewardGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		reward, err := s.GetRewardByID(ctx, id)
		if err != nil {
			logger.Log.Error("reward get handler error - getting reward from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if reward == nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Reward not found"))
			return
		}
		writeJSON(w, http.StatusOK, reward)
	}
}

func RedeemPostHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := authorizedUID(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		reward, err := s.GetRewardByID(ctx, id)
		if err != nil {
			logger.Log.Error("redeem handler error - getting reward from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if reward == nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Reward not found"))
			return
		}
		redemption := models.Redemption{
			ID:          uuid.New().String(),
			UserID:      uid,
			RewardID:    reward.ID,
			RewardName:  reward.Name,
			Cost:        reward.Cost,
			ProcessedAt: time.Now().Format(time.RFC3339),
		}
		// deduction and stock decrement are conditional in one tx, so
		// concurrent redeems cannot double spend
		if err := s.RedeemReward(ctx, &redemption); err != nil {
			switch {
			case errors.Is(err, storage.ErrInsufficientPoints):
				w.WriteHeader(http.StatusPaymentRequired)
				w.Write([]byte("Not enough points on balance"))
			case errors.Is(err, storage.ErrRewardOutOfStock):
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte("Reward is out of stock"))
			default:
				logger.Log.Error("redeem handler error - redeeming reward failed", zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Internal Server Error"))
			}
			return
		}
		writeJSON(w, http.StatusOK, redemption)
	}
}
