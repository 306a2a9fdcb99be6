package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/limloop/limloop/internal/authorization"
	"github.com/limloop/limloop/internal/constants"
	"github.com/limloop/limloop/internal/logger"
	"github.com/limloop/limloop/internal/models"
	"github.com/limloop/limloop/internal/storage"
	"github.com/limloop/limloop/internal/utils"
	"go.uber.org/zap"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address"`
	Password string `json:"password" validate:"required,min=6"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	UserID      int64  `json:"userId"`
	AccessToken string `json:"accessToken"`
}

func SignupPostHandler(ctx context.Context, s storage.Storage, a authorization.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if appType := r.Header.Get("Content-Type"); appType != constants.CntTypeHeaderJSON {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request Content-Type"))
			return
		}
		reqBody, err := io.ReadAll(r.Body)
		defer r.Body.Close()
		if err != nil {
			logger.Log.Error("signup handler error - body reading error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		var req signupRequest
		if err = json.Unmarshal(reqBody, &req); err != nil {
			logger.Log.Debug("signup handler error - body deserialization error", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request format"))
			return
		}
		if err = validate.Struct(req); err != nil {
			logger.Log.Debug("signup handler error - validation error", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request format"))
			return
		}
		if !utils.CheckPhone(req.Phone) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong phone format"))
			return
		}
		emailFree, err := s.IsEmailFree(ctx, req.Email)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if !emailFree {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte("Email already used"))
			return
		}
		user := models.User{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
			Password: hashPassword(req.Password),
		}
		uid, err := s.AddUser(ctx, &user)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		balance := models.PointsBalance{ID: uuid.New().String(), UserID: uid}
		if err := s.AddBalance(ctx, &balance); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		token, err := a.ProduceToken(uid)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		w.Header().Add(constants.HeaderToken, constants.BearerPrefix+token)
		writeJSON(w, http.StatusOK, authResponse{UserID: uid, AccessToken: token})
	}
}

func SigninPostHandler(ctx context.Context, s storage.Storage, a authorization.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if appType := r.Header.Get("Content-Type"); appType != constants.CntTypeHeaderJSON {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request Content-Type"))
			return
		}
		reqBody, err := io.ReadAll(r.Body)
		defer r.Body.Close()
		if err != nil {
			logger.Log.Error("signin handler error - body reading error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		var req signinRequest
		if err = json.Unmarshal(reqBody, &req); err != nil {
			logger.Log.Debug("signin handler error - body deserialization error", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request format"))
			return
		}
		if err = validate.Struct(req); err != nil {
			logger.Log.Debug("signin handler error - validation error", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Wrong request format"))
			return
		}
		user, err := s.GetUserByEmail(ctx, req.Email)
		if err != nil {
			logger.Log.Error("signin handler error - getting user by email error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Wrong email or password"))
			return
		}
		if hashPassword(req.Password) != user.Password {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Wrong email or password"))
			return
		}
		token, err := a.ProduceToken(user.ID)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		w.Header().Add(constants.HeaderToken, constants.BearerPrefix+token)
		writeJSON(w, http.StatusOK, authResponse{UserID: user.ID, AccessToken: token})
	}
}
