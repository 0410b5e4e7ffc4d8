package handlers

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	startedAt time.Time
	env       string
	apiKeySet bool
	modelName string
}

func NewHealthHandler(env, modelName string, apiKeySet bool) *HealthHandler {
	return &HealthHandler{
		startedAt: time.Now(),
		env:       env,
		apiKeySet: apiKeySet,
		modelName: modelName,
	}
}

// Info serves GET /: a small service banner with the available endpoints.
func (h *HealthHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "studypal-backend",
		"status":  "ok",
		"endpoints": []string{
			"POST /",
			"POST /proxy",
			"POST /api/chat",
			"POST /api/generate-flashcards",
			"POST /api/generate-quiz",
			"GET /health",
		},
	})
}

// Health serves GET /health: liveness, uptime and config presence.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "ok",
		"uptimeSeconds":    int(time.Since(h.startedAt).Seconds()),
		"environment":      h.env,
		"model":            h.modelName,
		"geminiConfigured": h.apiKeySet,
	})
}
