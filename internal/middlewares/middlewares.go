package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/limloop/limloop/internal/authorization"
	"github.com/limloop/limloop/internal/constants"
	"github.com/limloop/limloop/internal/logger"
	"go.uber.org/zap"
)

type ctxKey string

const UID ctxKey = "uid"

func Authorize(a authorization.Authorizer, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenHeader := r.Header.Get(constants.HeaderToken)
		if tokenHeader == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Access denied"))
			return
		}
		tokenString := strings.TrimPrefix(tokenHeader, constants.BearerPrefix)
		userID, err := a.VerifyToken(tokenString)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Access denied"))
			return
		}
		ctx := context.WithValue(r.Context(), UID, userID)
		logger.Log.Debug("user authorized successfully", zap.Int64("UserID", userID), zap.String("PATH", r.URL.Path))
		next(w, r.WithContext(ctx))
	}
}
