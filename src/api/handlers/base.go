package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"assetserver/src/api/controllers"
	"assetserver/src/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	AssetsController controllers.AssetsControllerI
	Logger           *logrus.Logger
}

func NewHandler(db *gorm.DB, logger *logrus.Logger) *Handler {
	controller := controllers.NewController(db)
	return &Handler{AssetsController: controller.Assets, Logger: logger}
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// log prefers the request scoped logger set by the logging middleware.
func (h *Handler) log(r *http.Request) logrus.FieldLogger {
	if l, ok := utils.ContextLogger(r.Context()); ok {
		return l
	}
	if h.Logger != nil {
		return h.Logger
	}
	return utils.LoggerFromContext(r.Context())
}

// HandleErrors logs err and writes its JSON translation.
func (h *Handler) HandleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *utils.HTTPError
	var storeErr *utils.StoreError
	switch {
	case errors.As(err, &httpErr):
		h.log(r).WithField("status", httpErr.Code).Warn(httpErr.Message)
	case errors.As(err, &storeErr):
		entry := h.log(r).WithError(storeErr.Err)
		var pgErr *pgconn.PgError
		if errors.As(storeErr.Err, &pgErr) {
			entry = entry.WithField("sqlstate", pgErr.Code)
		}
		entry.Errorf("database error: %+v", storeErr.Err)
	default:
		h.log(r).WithError(err).Error("unexpected error")
	}
	utils.WriteError(w, err)
}
