package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"studypal-backend/internal/gemini"
	"studypal-backend/internal/handlers"
	"studypal-backend/internal/models"
	"studypal-backend/internal/router"
	"studypal-backend/internal/services"
)

type stubGenerator struct {
	calls int
	resp  *gemini.GenerateResponse
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, contents []gemini.Content, cfg gemini.GenerationConfig) (*gemini.GenerateResponse, error) {
	s.calls++
	return s.resp, s.err
}

func newTestRouter(stub *stubGenerator, configured bool) http.Handler {
	svc := services.NewTutorService(stub, configured)
	tutorHandler := handlers.NewTutorHandler(svc, false)
	healthHandler := handlers.NewHealthHandler("test", "test-model", configured)
	return router.New(tutorHandler, healthHandler, 1000, "*")
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func candidate(text string) *gemini.GenerateResponse {
	return &gemini.GenerateResponse{
		Candidates: []gemini.Candidate{
			{Content: &gemini.Content{Parts: []gemini.Part{{Text: text}}}},
		},
	}
}

// ─── Chat endpoint ───

func TestChat_EndToEnd(t *testing.T) {
	stub := &stubGenerator{resp: candidate("Photosynthesis converts light into chemical energy.")}
	r := newTestRouter(stub, true)

	rr := doJSON(t, r, http.MethodPost, "/api/chat", models.ChatRequest{
		Message: "What is photosynthesis?",
		Topic:   "Biology",
		History: []models.ChatTurn{},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Response != "Photosynthesis converts light into chemical energy." {
		t.Errorf("unexpected response: %q", resp.Response)
	}
	if stub.calls != 1 {
		t.Errorf("expected exactly one upstream call, got %d", stub.calls)
	}
}

func TestChat_EmptyMessageIs400WithoutUpstreamCall(t *testing.T) {
	stub := &stubGenerator{resp: candidate("unused")}
	r := newTestRouter(stub, true)

	rr := doJSON(t, r, http.MethodPost, "/api/chat", models.ChatRequest{Message: ""})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if stub.calls != 0 {
		t.Errorf("expected no upstream calls, got %d", stub.calls)
	}

	var body map[string]interface{}
	json.NewDecoder(rr.Body).Decode(&body)
	if body["error"] == nil || body["error"] == "" {
		t.Error("expected a descriptive error message")
	}
}

func TestChat_MissingAPIKeyIs500WithoutUpstreamCall(t *testing.T) {
	stub := &stubGenerator{resp: candidate("unused")}
	r := newTestRouter(stub, false)

	rr := doJSON(t, r, http.MethodPost, "/api/chat", models.ChatRequest{Message: "hi"})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	if stub.calls != 0 {
		t.Errorf("expected no upstream calls, got %d", stub.calls)
	}
}

func TestChat_UpstreamStatusRelayedWithSafeText(t *testing.T) {
	stub := &stubGenerator{err: &gemini.StatusError{StatusCode: 503, Body: "model overloaded"}}
	r := newTestRouter(stub, true)

	rr := doJSON(t, r, http.MethodPost, "/api/chat", models.ChatRequest{Message: "hi"})

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected relayed status 503, got %d", rr.Code)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["text"] == nil || body["text"] == "" {
		t.Error("expected a user-safe text field on upstream failure")
	}
	if body["detail"] != nil {
		t.Error("raw upstream detail must not leak outside dev mode")
	}
}

// ─── Plain prompt endpoint ───

func TestPrompt_Success(t *testing.T) {
	stub := &stubGenerator{resp: candidate("42")}
	r := newTestRouter(stub, true)

	rr := doJSON(t, r, http.MethodPost, "/", models.PromptRequest{Prompt: "meaning of life?"})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp models.PromptResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Text != "42" {
		t.Errorf("expected text '42', got %q", resp.Text)
	}
}

func TestPrompt_UpstreamFailureUsesLegacyShape(t *testing.T) {
	stub := &stubGenerator{err: &gemini.StatusError{StatusCode: 500, Body: "boom"}}
	r := newTestRouter(stub, true)

	rr := doJSON(t, r, http.MethodPost, "/", models.PromptRequest{Prompt: "hi"})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}

	var body map[string]interface{}
	json.NewDecoder(rr.Body).Decode(&body)
	if body["text"] != "Error contacting AI" {
		t.Errorf("expected legacy error text, got %v", body["text"])
	}
}

// ─── Proxy endpoint ───

func TestProxy_Success(t *testing.T) {
	stub := &stubGenerator{resp: candidate("ahoy, matey")}
	r := newTestRouter(stub, true)

	rr := doJSON(t, r, http.MethodPost, "/proxy", models.ProxyRequest{
		Message:  "say hello",
		Mood:     "playful",
		Personas: []string{"pirate"},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp models.ProxyResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Reply != "ahoy, matey" {
		t.Errorf("expected reply 'ahoy, matey', got %q", resp.Reply)
	}
}

// ─── Artifact endpoints ───

func TestGenerateFlashcards_EndToEnd(t *testing.T) {
	stub := &stubGenerator{resp: candidate(
		"```json\n[{\"question\": \"Q1\", \"answer\": \"A1\"}, {\"question\": \"Q2\", \"answer\": \"A2\"}]\n```",
	)}
	r := newTestRouter(stub, true)

	rr := doJSON(t, r, http.MethodPost, "/api/generate-flashcards", models.GenerateRequest{
		Topic: "Biology",
		ConversationHistory: []models.ChatTurn{
			{Sender: "user", Content: "teach me about cells"},
		},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	var resp models.FlashcardsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Flashcards) != 2 {
		t.Fatalf("expected 2 flashcards, got %d", len(resp.Flashcards))
	}
	if resp.Flashcards[0].Question != "Q1" || resp.Flashcards[1].Answer != "A2" {
		t.Errorf("flashcards out of order: %+v", resp.Flashcards)
	}
}

func TestGenerateQuiz_MalformedOutputIs500(t *testing.T) {
	stub := &stubGenerator{resp: candidate("no json here, sorry")}
	r := newTestRouter(stub, true)

	rr := doJSON(t, r, http.MethodPost, "/api/generate-quiz", models.GenerateRequest{Topic: "Biology"})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}

	var body map[string]interface{}
	json.NewDecoder(rr.Body).Decode(&body)
	if body["error"] != "AI generated malformed output" {
		t.Errorf("expected malformed output error, got %v", body["error"])
	}
}

func TestGenerateQuiz_MissingTopicIs400(t *testing.T) {
	stub := &stubGenerator{resp: candidate("unused")}
	r := newTestRouter(stub, true)

	rr := doJSON(t, r, http.MethodPost, "/api/generate-quiz", models.GenerateRequest{})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if stub.calls != 0 {
		t.Errorf("expected no upstream calls, got %d", stub.calls)
	}
}

// ─── Info, health, fallback ───

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubGenerator{}, true)

	rr := doJSON(t, r, http.MethodGet, "/health", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", body["status"])
	}
	if body["geminiConfigured"] != true {
		t.Errorf("expected geminiConfigured true, got %v", body["geminiConfigured"])
	}
}

func TestInfo(t *testing.T) {
	r := newTestRouter(&stubGenerator{}, true)

	rr := doJSON(t, r, http.MethodGet, "/", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
}

func TestUnknownEndpointIs404(t *testing.T) {
	r := newTestRouter(&stubGenerator{}, true)

	rr := doJSON(t, r, http.MethodGet, "/nope", nil)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}

	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	if body["error"] != "Endpoint not found" {
		t.Errorf("expected 'Endpoint not found', got %q", body["error"])
	}
}

func TestWrongMethodIs404(t *testing.T) {
	r := newTestRouter(&stubGenerator{}, true)

	rr := doJSON(t, r, http.MethodDelete, "/api/chat", nil)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}
