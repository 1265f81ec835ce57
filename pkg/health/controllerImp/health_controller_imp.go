package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"croptech/pkg/store/repository"
)

var appStart = time.Now()

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// HealthCtrl reports liveness plus the state of the persistence store
// the calendar subsystem writes through on every change.
type HealthCtrl struct {
	db    *gorm.DB
	store repository.StoreRepository
}

func NewHealthCtrl(db *gorm.DB, store repository.StoreRepository) *HealthCtrl {
	return &HealthCtrl{db: db, store: store}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	checks := map[string]check{
		"database": h.pingDB(ctx),
		"store":    h.probeStore(),
	}

	ok := true
	for _, ch := range checks {
		ok = ok && ch.OK
	}
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]any{
		"ok":         ok,
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     checks,
		"time":       time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// probeStore does a read of a key that may not exist; a missing key is
// healthy, only a store error is not.
func (h *HealthCtrl) probeStore() check {
	if h.store == nil {
		return check{Err: "store is nil"}
	}
	if _, _, err := h.store.Get("health-probe"); err != nil {
		return check{Err: "get: " + err.Error()}
	}
	return check{OK: true}
}
