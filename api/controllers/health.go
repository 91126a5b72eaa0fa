package controllers

import (
	"context"
	"net/http"

	"github.com/videxhq/videx-backend/api/responses"
	"github.com/videxhq/videx-backend/pkg/config"
	"github.com/videxhq/videx-backend/pkg/logger"
)

// StoragePinger is what readiness needs from the blob store.
type StoragePinger interface {
	Exists(ctx context.Context, key string) (bool, error)
}

func Health(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Videx-Env", cfg.App.Env)
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// HealthReady probes the blob store with a throwaway key; any transport
// error marks the instance unready.
func HealthReady(cfg *config.Config, logg *logger.Logger, storage StoragePinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Videx-Env", cfg.App.Env)
		if storage != nil {
			if _, err := storage.Exists(r.Context(), "readiness-probe"); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "readiness probe failed", err)
				}
				responses.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unready"})
				return
			}
		}
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
