package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/limloop/limloop/internal/constants"
	"github.com/limloop/limloop/internal/logger"
	"github.com/limloop/limloop/internal/middlewares"
)

func hashPassword(pwd string) string {
	pwdHash := sha256.Sum256([]byte(pwd))
	return hex.EncodeToString(pwdHash[:])
}

// authorizedUID reads the user id put into the request context by the
// authorize middleware. Writes a 500 and returns false when it is missing.
func authorizedUID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID := r.Context().Value(middlewares.UID)
	uid, ok := userID.(int64)
	if !ok {
		logger.Log.Error("getting uid value from request context failed")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
		return 0, false
	}
	return uid, true
}

// pathID parses the {id} url parameter.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Wrong id format"))
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("response serialization failed")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
		return
	}
	w.Header().Set("Content-Type", constants.CntTypeHeaderJSON)
	w.WriteHeader(status)
	w.Write(body)
}
