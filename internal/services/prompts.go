package services

import (
	"fmt"
	"strings"

	"studypal-backend/internal/models"
)

// buildTutorTurn wraps the student's current message with fixed tutor style
// instructions and topic context. Deterministic string template.
func buildTutorTurn(topic, message string) string {
	var b strings.Builder

	b.WriteString("You are a friendly and patient study tutor helping a student learn.\n\n")

	if topic != "" {
		b.WriteString(fmt.Sprintf("Topic: %s\n", topic))
	}

	b.WriteString(`
Style rules:
- Explain in plain, encouraging language
- Use short paragraphs; bullet points only when listing
- Keep the answer under 200 words
- End with a short check-in question when it helps learning
`)

	b.WriteString("\nStudent question: ")
	b.WriteString(message)

	return b.String()
}

// buildStyledPrompt folds the free-form mode, mood and persona parameters into
// a single instruction string ahead of the user message. None of them are
// validated beyond being strings.
func buildStyledPrompt(req models.ProxyRequest) string {
	var b strings.Builder

	b.WriteString("You are a conversational AI assistant.\n")

	if req.Topic != "" {
		b.WriteString(fmt.Sprintf("Topic of discussion: %s\n", req.Topic))
	}
	if req.Mode != "" {
		b.WriteString(fmt.Sprintf("Conversation mode: %s\n", req.Mode))
	}
	if req.Mood != "" {
		b.WriteString(fmt.Sprintf("Respond in a %s mood.\n", req.Mood))
	}
	if len(req.Personas) > 0 {
		b.WriteString(fmt.Sprintf("Adopt the following personas: %s\n", strings.Join(req.Personas, ", ")))
	}

	b.WriteString("\nUser message: ")
	b.WriteString(req.Message)

	return b.String()
}

// buildFlashcardPrompt embeds the flattened conversation in a task template
// that pins down the exact output schema with one worked example.
func buildFlashcardPrompt(topic string, history []models.ChatTurn) string {
	var b strings.Builder

	b.WriteString("You are an expert flashcard creator. Create study flashcards from the conversation below.\n\n")
	b.WriteString(fmt.Sprintf("Topic: %s\n\n", topic))

	b.WriteString("Return a JSON array inside a fenced ```json block. Each element must have exactly these fields:\n")
	b.WriteString(`{"question": "string", "answer": "string"}` + "\n\n")

	b.WriteString("Example output:\n")
	b.WriteString("```json\n")
	b.WriteString(`[{"question": "What organelle produces most of a cell's ATP?", "answer": "The mitochondrion."}]` + "\n")
	b.WriteString("```\n")

	b.WriteString("\n---CONVERSATION---\n")
	b.WriteString(flattenHistory(history))
	b.WriteString("\n---END---\n")

	return b.String()
}

// buildQuizPrompt embeds the flattened conversation in a task template that
// pins down the exact output schema with one worked example.
func buildQuizPrompt(topic string, history []models.ChatTurn) string {
	var b strings.Builder

	b.WriteString("You are an expert educational assessor. Create multiple choice quiz questions from the conversation below.\n\n")
	b.WriteString(fmt.Sprintf("Topic: %s\n\n", topic))

	b.WriteString("Return a JSON array inside a fenced ```json block. Each element must have exactly these fields:\n")
	b.WriteString(`{"question": "string", "options": ["string", "string", "string", "string"], "correctAnswer": int}` + "\n")
	b.WriteString("correctAnswer is the zero-based index of the right option. Exactly 4 options per question.\n\n")

	b.WriteString("Example output:\n")
	b.WriteString("```json\n")
	b.WriteString(`[{"question": "Which gas do plants absorb during photosynthesis?", "options": ["Oxygen", "Carbon dioxide", "Nitrogen", "Hydrogen"], "correctAnswer": 1}]` + "\n")
	b.WriteString("```\n")

	b.WriteString("\n---CONVERSATION---\n")
	b.WriteString(flattenHistory(history))
	b.WriteString("\n---END---\n")

	return b.String()
}
