package models

// GenerateRequest is the shared payload for the flashcard and quiz endpoints.
type GenerateRequest struct {
	Topic               string     `json:"topic"`
	ConversationHistory []ChatTurn `json:"conversationHistory"`
}

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FlashcardsResponse struct {
	Flashcards []Flashcard `json:"flashcards"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type QuizResponse struct {
	QuizQuestions []QuizQuestion `json:"quizQuestions"`
}
