package models

// ChatTurn is a single message in a conversation. Sender is "user" for the
// student; any other value is treated as the AI side.
type ChatTurn struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// PromptRequest is the payload for the plain POST / endpoint.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// PromptResponse is the reply from the plain endpoint.
type PromptResponse struct {
	Text string `json:"text"`
}

// ProxyRequest is the payload for the styled POST /proxy endpoint. Mode, mood
// and personas are free-form styling hints folded into the prompt text.
type ProxyRequest struct {
	Message  string   `json:"message"`
	Topic    string   `json:"topic"`
	Mode     string   `json:"mode"`
	Mood     string   `json:"mood"`
	Personas []string `json:"personas"`
}

// ProxyResponse is the reply from the styled endpoint.
type ProxyResponse struct {
	Reply string `json:"reply"`
}

// ChatRequest is the payload for the tutor POST /api/chat endpoint.
type ChatRequest struct {
	Message string     `json:"message"`
	Topic   string     `json:"topic"`
	History []ChatTurn `json:"history"`
}

// ChatResponse is the tutor's reply.
type ChatResponse struct {
	Response string `json:"response"`
}
