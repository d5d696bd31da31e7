package anthropic

// Message is a single turn in the messages API request. The assistant flattens
// conversation history into the prompt text, so requests carry exactly one
// user message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	Messages    []Message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type messagesResponse struct {
	ID         string         `json:"id"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Content    []contentBlock `json:"content"`
	Error      *apiError      `json:"error"`
}

// Completion is the normalized result of a completion call. Providers return
// differently shaped success payloads; the client reduces them all to either
// text or an explicitly empty result, so callers branch on one shape.
type Completion struct {
	Text  string
	Empty bool // true when the provider returned no usable text block
	Model string
}
