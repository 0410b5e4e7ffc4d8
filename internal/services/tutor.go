package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"studypal-backend/internal/gemini"
	"studypal-backend/internal/models"
)

// Generator is the outbound generation call. Satisfied by *gemini.Client;
// stubbed in tests.
type Generator interface {
	Generate(ctx context.Context, contents []gemini.Content, cfg gemini.GenerationConfig) (*gemini.GenerateResponse, error)
}

// TutorService normalizes inbound requests into Gemini content payloads and
// extracts answers from the replies. Stateless; safe for concurrent use.
type TutorService struct {
	gen        Generator
	configured bool
}

func NewTutorService(gen Generator, configured bool) *TutorService {
	return &TutorService{gen: gen, configured: configured}
}

// Answer serves the plain prompt endpoint: one user turn, no wrapping.
func (s *TutorService) Answer(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", &ValidationError{Message: "Prompt is required"}
	}
	if err := s.checkConfigured(); err != nil {
		return "", err
	}

	contents := []gemini.Content{
		{Role: "user", Parts: []gemini.Part{{Text: prompt}}},
	}

	resp, err := s.gen.Generate(ctx, contents, gemini.PromptPreset)
	if err != nil {
		return "", mapUpstreamError(err)
	}

	return extractText(resp), nil
}

// StyledReply serves the /proxy endpoint: mode, mood and personas are folded
// into a single instruction string ahead of the user message.
func (s *TutorService) StyledReply(ctx context.Context, req models.ProxyRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", &ValidationError{Message: "Message is required"}
	}
	if err := s.checkConfigured(); err != nil {
		return "", err
	}

	contents := []gemini.Content{
		{Role: "user", Parts: []gemini.Part{{Text: buildStyledPrompt(req)}}},
	}

	resp, err := s.gen.Generate(ctx, contents, gemini.PromptPreset)
	if err != nil {
		return "", mapUpstreamError(err)
	}

	return extractText(resp), nil
}

// Chat serves the tutor chat endpoint. History is forwarded turn by turn; the
// current message is wrapped with tutor style instructions and topic context.
func (s *TutorService) Chat(ctx context.Context, req models.ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", &ValidationError{Message: "Message is required"}
	}
	if err := s.checkConfigured(); err != nil {
		return "", err
	}

	contents := historyToContents(req.History)
	contents = append(contents, gemini.Content{
		Role:  "user",
		Parts: []gemini.Part{{Text: buildTutorTurn(req.Topic, req.Message)}},
	})

	resp, err := s.gen.Generate(ctx, contents, gemini.ChatPreset)
	if err != nil {
		return "", mapUpstreamError(err)
	}

	return extractText(resp), nil
}

// GenerateFlashcards asks the model for a JSON flashcard array derived from
// the conversation so far.
func (s *TutorService) GenerateFlashcards(ctx context.Context, req models.GenerateRequest) ([]models.Flashcard, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, &ValidationError{Message: "Topic is required"}
	}
	if err := s.checkConfigured(); err != nil {
		return nil, err
	}

	prompt := buildFlashcardPrompt(req.Topic, req.ConversationHistory)
	contents := []gemini.Content{
		{Role: "user", Parts: []gemini.Part{{Text: prompt}}},
	}

	resp, err := s.gen.Generate(ctx, contents, gemini.FlashcardPreset)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	raw, err := firstCandidateText(resp)
	if err != nil {
		return nil, err
	}

	var cards []models.Flashcard
	if err := parseStructured(raw, &cards); err != nil {
		return nil, err
	}

	valid := validateFlashcards(cards)
	if len(valid) == 0 {
		return nil, &MalformedOutputError{Detail: "no usable flashcards in model output"}
	}
	return valid, nil
}

// GenerateQuiz asks the model for a JSON quiz-question array derived from the
// conversation so far.
func (s *TutorService) GenerateQuiz(ctx context.Context, req models.GenerateRequest) ([]models.QuizQuestion, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, &ValidationError{Message: "Topic is required"}
	}
	if err := s.checkConfigured(); err != nil {
		return nil, err
	}

	prompt := buildQuizPrompt(req.Topic, req.ConversationHistory)
	contents := []gemini.Content{
		{Role: "user", Parts: []gemini.Part{{Text: prompt}}},
	}

	resp, err := s.gen.Generate(ctx, contents, gemini.QuizPreset)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	raw, err := firstCandidateText(resp)
	if err != nil {
		return nil, err
	}

	var questions []models.QuizQuestion
	if err := parseStructured(raw, &questions); err != nil {
		return nil, err
	}

	valid := validateQuizQuestions(questions)
	if len(valid) == 0 {
		return nil, &MalformedOutputError{Detail: "no usable quiz questions in model output"}
	}
	return valid, nil
}

func (s *TutorService) checkConfigured() error {
	if !s.configured {
		return &ConfigError{Message: "GEMINI_API_KEY is not set"}
	}
	return nil
}

func mapUpstreamError(err error) error {
	if statusErr, ok := err.(*gemini.StatusError); ok {
		return &UpstreamError{StatusCode: statusErr.StatusCode, Detail: statusErr.Body}
	}
	return err
}

// Helper functions

// historyToContents maps conversation turns to Gemini contents in order.
// Sender "user" maps to role "user"; anything else maps to "model".
func historyToContents(history []models.ChatTurn) []gemini.Content {
	contents := make([]gemini.Content, 0, len(history)+1)
	for _, turn := range history {
		role := "model"
		if turn.Sender == "user" {
			role = "user"
		}
		contents = append(contents, gemini.Content{
			Role:  role,
			Parts: []gemini.Part{{Text: turn.Content}},
		})
	}
	return contents
}

// flattenHistory renders the conversation as one "sender: content" block for
// the artifact prompts.
func flattenHistory(history []models.ChatTurn) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Sender, turn.Content))
	}
	return strings.Join(lines, "\n")
}

// extractText resolves a generation response to a display string. Total: every
// response shape maps to exactly one string.
func extractText(resp *gemini.GenerateResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return "No response from AI"
	}

	cand := resp.Candidates[0]
	if cand.Content != nil && len(cand.Content.Parts) > 0 {
		if text := cand.Content.Parts[0].Text; text != "" {
			return text
		}
		return "Empty response from AI"
	}

	if cand.FinishReason != "" {
		return "AI response blocked: " + cand.FinishReason
	}

	return "No response from AI"
}

func firstCandidateText(resp *gemini.GenerateResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &MalformedOutputError{Detail: "no candidates in model output"}
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", &MalformedOutputError{Detail: "candidate has no content parts"}
	}
	return cand.Content.Parts[0].Text, nil
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// parseStructured parses model output into v. It first looks for a fenced
// ```json block and parses its interior; failing that it parses the whole
// text. A parse failure on both paths is a malformed-output error.
func parseStructured(raw string, v interface{}) error {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		if err := json.Unmarshal([]byte(m[1]), v); err == nil {
			return nil
		}
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), v); err != nil {
		return &MalformedOutputError{Detail: err.Error()}
	}
	return nil
}

func validateFlashcards(cards []models.Flashcard) []models.Flashcard {
	var valid []models.Flashcard
	for _, c := range cards {
		if strings.TrimSpace(c.Question) == "" || strings.TrimSpace(c.Answer) == "" {
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

func validateQuizQuestions(questions []models.QuizQuestion) []models.QuizQuestion {
	var valid []models.QuizQuestion
	for _, q := range questions {
		if q.Question == "" || len(q.Options) == 0 {
			continue
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			q.CorrectAnswer = 0
		}
		valid = append(valid, q)
	}
	return valid
}
