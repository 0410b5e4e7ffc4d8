package handlers

import (
	"encoding/json"
	"net/http"

	"studypal-backend/internal/models"
	"studypal-backend/internal/services"
)

type TutorHandler struct {
	svc     *services.TutorService
	devMode bool
}

func NewTutorHandler(svc *services.TutorService, devMode bool) *TutorHandler {
	return &TutorHandler{svc: svc, devMode: devMode}
}

// Prompt serves POST /: the plain one-shot prompt endpoint.
func (h *TutorHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	var req models.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request body", nil))
		return
	}

	text, err := h.svc.Answer(r.Context(), req.Prompt)
	if err != nil {
		if vErr, ok := err.(*services.ValidationError); ok {
			writeJSON(w, http.StatusBadRequest, errorBody(vErr.Message, nil))
			return
		}
		// Every other failure collapses to the legacy shape for this endpoint.
		writeJSON(w, http.StatusInternalServerError, h.withDetail(map[string]interface{}{
			"text": "Error contacting AI",
		}, err))
		return
	}

	writeJSON(w, http.StatusOK, models.PromptResponse{Text: text})
}

// Proxy serves POST /proxy: the styled persona/mode/mood variant.
func (h *TutorHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	var req models.ProxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request body", nil))
		return
	}

	reply, err := h.svc.StyledReply(r.Context(), req)
	if err != nil {
		writeJSON(w, errorStatus(err), h.withDetail(errorBody(clientMessage(err), nil), err))
		return
	}

	writeJSON(w, http.StatusOK, models.ProxyResponse{Reply: reply})
}

// Chat serves POST /api/chat: the tutor conversation endpoint.
func (h *TutorHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request body", nil))
		return
	}

	response, err := h.svc.Chat(r.Context(), req)
	if err != nil {
		status := errorStatus(err)
		body := errorBody(clientMessage(err), nil)
		if status >= 500 {
			body["text"] = "The AI tutor is unavailable right now. Please try again."
		}
		writeJSON(w, status, h.withDetail(body, err))
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: response})
}

// GenerateFlashcards serves POST /api/generate-flashcards.
func (h *TutorHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request body", nil))
		return
	}

	cards, err := h.svc.GenerateFlashcards(r.Context(), req)
	if err != nil {
		writeJSON(w, errorStatus(err), h.withDetail(errorBody(clientMessage(err), nil), err))
		return
	}

	writeJSON(w, http.StatusOK, models.FlashcardsResponse{Flashcards: cards})
}

// GenerateQuiz serves POST /api/generate-quiz.
func (h *TutorHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request body", nil))
		return
	}

	questions, err := h.svc.GenerateQuiz(r.Context(), req)
	if err != nil {
		writeJSON(w, errorStatus(err), h.withDetail(errorBody(clientMessage(err), nil), err))
		return
	}

	writeJSON(w, http.StatusOK, models.QuizResponse{QuizQuestions: questions})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorBody(message string, extra map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{"error": message}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

// withDetail echoes the underlying error text only outside production.
func (h *TutorHandler) withDetail(body map[string]interface{}, err error) map[string]interface{} {
	if h.devMode && err != nil {
		body["detail"] = err.Error()
		if uErr, ok := err.(*services.UpstreamError); ok && uErr.Detail != "" {
			body["detail"] = uErr.Detail
		}
	}
	return body
}

// errorStatus maps service errors to response codes. Upstream failures relay
// the upstream status unchanged.
func errorStatus(err error) int {
	switch e := err.(type) {
	case *services.ValidationError:
		return http.StatusBadRequest
	case *services.ConfigError:
		return http.StatusInternalServerError
	case *services.UpstreamError:
		return e.StatusCode
	case *services.MalformedOutputError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage is the safe user-facing message per error kind. Raw upstream
// bodies and transport errors never leak here.
func clientMessage(err error) string {
	switch e := err.(type) {
	case *services.ValidationError:
		return e.Message
	case *services.ConfigError:
		return "Server is not configured for AI generation"
	case *services.UpstreamError:
		return e.Error()
	case *services.MalformedOutputError:
		return "AI generated malformed output"
	default:
		return "An unexpected error occurred"
	}
}
