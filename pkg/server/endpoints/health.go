package endpoints

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/server"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

const healthTimeout = 2 * time.Second

// RegisterHealthEndpoints registers the liveness probe
func RegisterHealthEndpoints(s *server.Server) {
	// GET /api/health - no auth required
	s.Router.HandleFunc("/api/health", handleHealth(s.HealthStore, s.Logger)).Methods("GET")
}

func handleHealth(healthStore store.HealthStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := healthStore.CheckConnectivity(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"ok":    false,
				"error": "database unavailable",
			})
			return
		}
		respondOK(w, http.StatusOK)
	}
}
