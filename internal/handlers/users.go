package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/limloop/limloop/internal/logger"
	"github.com/limloop/limloop/internal/stats"
	"github.com/limloop/limloop/internal/storage"
	"github.com/limloop/limloop/internal/utils"
	"go.uber.org/zap"
)

type userUpdateRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
}

type passwordUpdateRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// ownResource checks that the authorized user operates on their own record.
func ownResource(w http.ResponseWriter, r *http.Request) (int64, bool) {
	uid, ok := authorizedUID(w, r)
	if !ok {
		return 0, false
	}
	id, ok := pathID(w, r)
	if !ok {
		return 0, false
	}
	if id != uid {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("Access denied"))
		return 0, false
	}
	return uid, true
}

func UserGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := ownResource(w, r)
		if !ok {
			return
		}
		user, err := s.GetUserByID(ctx, uid)
		if err != nil {
			logger.Log.Error("user get handler error - getting user from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if user == nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("User not found"))
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func UserPutHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := ownResource(w, r)
		if !ok {
			return
		}
		reqBody, err := io.ReadAll(r.Body)
		defer r.Body.Close()
		if err != nil {
			logger.Log.Error("user put handler error - body reading error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		var req userUpdateRequest
		if err = json.Unmarshal(reqBody, &req); err != nil {
			logger.Log.Debug("user put handler error - body deserialization error", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request format"))
			return
		}
		if err = validate.Struct(req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request format"))
			return
		}
		if !utils.CheckPhone(req.Phone) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong phone format"))
			return
		}
		user, err := s.GetUserByID(ctx, uid)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if user == nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("User not found"))
			return
		}
		user.Name = req.Name
		user.Phone = req.Phone
		user.Address = req.Address
		if err := s.UpdateUser(ctx, user); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func PasswordPutHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := ownResource(w, r)
		if !ok {
			return
		}
		reqBody, err := io.ReadAll(r.Body)
		defer r.Body.Close()
		if err != nil {
			logger.Log.Error("password put handler error - body reading error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		var req passwordUpdateRequest
		if err = json.Unmarshal(reqBody, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request format"))
			return
		}
		if err = validate.Struct(req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request format"))
			return
		}
		user, err := s.GetUserByID(ctx, uid)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if user == nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("User not found"))
			return
		}
		if hashPassword(req.OldPassword) != user.Password {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Wrong password"))
			return
		}
		if err := s.UpdateUserPassword(ctx, uid, hashPassword(req.NewPassword)); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Password updated"))
	}
}

// RecycleStatsGetHandler returns per-category recycling totals with display-ready
// percentages that always sum to 100.
func RecycleStatsGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := ownResource(w, r)
		if !ok {
			return
		}
		recycleStats, err := s.GetRecycleStats(ctx, uid)
		if err != nil {
			logger.Log.Error("recycle stats handler error - getting stats from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		writeJSON(w, http.StatusOK, stats.Normalize(recycleStats))
	}
}

func BalanceGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := ownResource(w, r)
		if !ok {
			return
		}
		balance, err := s.GetBalanceByUserID(ctx, uid)
		if err != nil {
			logger.Log.Error("balance get handler error - getting balance from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		writeJSON(w, http.StatusOK, balance)
	}
}

func RedemptionsGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := ownResource(w, r)
		if !ok {
			return
		}
		redemptions, err := s.GetRedemptions(ctx, uid)
		if err != nil {
			logger.Log.Error("redemptions get handler error - getting redemptions from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if len(redemptions) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, redemptions)
	}
}
