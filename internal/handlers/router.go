package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/limloop/limloop/internal/authorization"
	"github.com/limloop/limloop/internal/logger"
	"github.com/limloop/limloop/internal/middlewares"
	"github.com/limloop/limloop/internal/models"
	"github.com/limloop/limloop/internal/storage"
)

// request DTOs are checked at the boundary so handlers work with known-good data
var validate = validator.New()

type HTTPRouter struct {
	mux           *chi.Mux
	storage       storage.Storage
	authorizer    authorization.Authorizer
	ordersChannel chan<- *models.Order
}

func NewHTTPRouter(s storage.Storage, a authorization.Authorizer, ch chan<- *models.Order) *HTTPRouter {
	r := chi.NewRouter()
	return &HTTPRouter{mux: r, storage: s, authorizer: a, ordersChannel: ch}
}

func (r *HTTPRouter) RouterInit(ctx context.Context) error {
	storage := r.storage
	authorizer := r.authorizer
	ordersChannel := r.ordersChannel
	r.mux.Use(middleware.Logger)
	r.mux.Use(middleware.Compress(5))

	r.mux.Route("/auth", func(r chi.Router) {
		r.Post("/signup", SignupPostHandler(ctx, storage, authorizer))
		r.Post("/signin", SigninPostHandler(ctx, storage, authorizer))
	})

	r.mux.Route("/api/v1", func(r chi.Router) {
		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/", middlewares.Authorize(authorizer, UserGetHandler(ctx, storage)))
			r.Put("/", middlewares.Authorize(authorizer, UserPutHandler(ctx, storage)))
			r.Put("/password", middlewares.Authorize(authorizer, PasswordPutHandler(ctx, storage)))
			r.Get("/recycle-stats", middlewares.Authorize(authorizer, RecycleStatsGetHandler(ctx, storage)))
			r.Get("/balance", middlewares.Authorize(authorizer, BalanceGetHandler(ctx, storage)))
			r.Get("/redemptions", middlewares.Authorize(authorizer, RedemptionsGetHandler(ctx, storage)))
		})

		r.Get("/types", TypesGetHandler(ctx, storage))
		r.Get("/types/{id}", TypeGetHandler(ctx, storage))
		r.Get("/centers", CentersGetHandler(ctx, storage))
		r.Get("/centers/{id}", CenterGetHandler(ctx, storage))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", middlewares.Authorize(authorizer, OrdersGetHandler(ctx, storage)))
			r.Post("/material", middlewares.Authorize(authorizer, OrderPostHandler(ctx, storage, ordersChannel)))
			r.Get("/{id}", middlewares.Authorize(authorizer, OrderGetHandler(ctx, storage)))
		})

		r.Get("/rewards", RewardsGetHandler(ctx, storage))
		r.Get("/rewards/{id}", RewardGetHandler(ctx, storage))
		r.Post("/rewards/{id}/redeem", middlewares.Authorize(authorizer, RedeemPostHandler(ctx, storage)))
	})

	r.mux.NotFound(NotFoundHandler())
	return nil
}

func (r *HTTPRouter) StartRouter(ra string) error {
	logger.Log.Info("Http Router starting")
	err := http.ListenAndServe(ra, r.mux)
	if err != nil {
		return err
	}
	return nil
}

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("LimLoop page not found"))
	}
}
