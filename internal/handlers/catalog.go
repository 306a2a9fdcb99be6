package handlers

import (
	"context"
	"net/http"

	"github.com/limloop/limloop/internal/logger"
	"github.com/limloop/limloop/internal/storage"
	"go.uber.org/zap"
)

func TypesGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := s.GetTypes(ctx)
		if err != nil {
			logger.Log.Error("types get handler error - getting types from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		writeJSON(w, http.StatusOK, types)
	}
}

func TypeGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		materialType, err := s.GetTypeByID(ctx, id)
		if err != nil {
			logger.Log.Error("type get handler error - getting type from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if materialType == nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Type not found"))
			return
		}
		writeJSON(w, http.StatusOK, materialType)
	}
}

func CentersGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		centers, err := s.GetCenters(ctx)
		if err != nil {
			logger.Log.Error("centers get handler error - getting centers from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		writeJSON(w, http.StatusOK, centers)
	}
}

func CenterGetHandler(ctx context.Context, s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		center, err := s.GetCenterByID(ctx, id)
		if err != nil {
			logger.Log.Error("center get handler error - getting center from database failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
			return
		}
		if center == nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Center not found"))
			return
		}
		writeJSON(w, http.StatusOK, center)
	}
}
