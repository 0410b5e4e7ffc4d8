package gemini

// Wire types for the generateContent REST endpoint.

type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Role  string `json:"role,omitempty"` // "user" or "model"
	Parts []Part `json:"parts"`
}

type GenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Candidate struct {
	Content      *Content `json:"content"`
	FinishReason string   `json:"finishReason,omitempty"`
}

type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Per-endpoint generation presets. These are deliberately not configurable by
// callers; each inbound endpoint maps to exactly one preset.
var (
	// PromptPreset serves the plain prompt and styled proxy endpoints.
	PromptPreset = GenerationConfig{Temperature: 0.7, TopK: 40, TopP: 0.95, MaxOutputTokens: 1024}

	// ChatPreset serves the tutor chat endpoint.
	ChatPreset = GenerationConfig{Temperature: 0.7, TopK: 40, TopP: 0.95, MaxOutputTokens: 1024}

	// FlashcardPreset serves flashcard generation.
	FlashcardPreset = GenerationConfig{Temperature: 0.6, TopK: 40, TopP: 0.95, MaxOutputTokens: 900}

	// QuizPreset serves quiz generation.
	QuizPreset = GenerationConfig{Temperature: 0.6, TopK: 40, TopP: 0.95, MaxOutputTokens: 1024}
)
