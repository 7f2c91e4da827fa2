package llm

// Chat roles understood by the completion endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the payload of a single chat-completion call. Extra
// holds provider-specific fields that are merged into the outgoing body as-is.
type CompletionRequest struct {
	Model    string
	Messages []Message
	// Temperature nil means "use the client default"; an explicit 0 is a
	// valid deterministic setting and is sent as-is.
	Temperature *float64
	MaxTokens   *int
	Stream      bool
	Extra       map[string]interface{}
}

// payload builds the wire representation. MaxTokens and Temperature are
// omitted when unset.
func (r CompletionRequest) payload() map[string]interface{} {
	body := map[string]interface{}{
		"model":    r.Model,
		"messages": r.Messages,
		"stream":   r.Stream,
	}
	if r.Temperature != nil {
		body["temperature"] = *r.Temperature
	}
	if r.MaxTokens != nil {
		body["max_tokens"] = *r.MaxTokens
	}
	for k, v := range r.Extra {
		body[k] = v
	}
	return body
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

type CompletionResult struct {
	ID      string                 `json:"id,omitempty"`
	Model   string                 `json:"model,omitempty"`
	Choices []Choice               `json:"choices"`
	Usage   map[string]interface{} `json:"usage,omitempty"`
}

// FirstContent returns the first choice's message content, or "" when the
// provider returned no choices.
func (r *CompletionResult) FirstContent() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// Option overrides a default of a higher-level operation's underlying
// completion call.
type Option func(*CompletionRequest)

func WithModel(model string) Option {
	return func(r *CompletionRequest) { r.Model = model }
}

func WithTemperature(temperature float64) Option {
	return func(r *CompletionRequest) { r.Temperature = &temperature }
}

func WithMaxTokens(maxTokens int) Option {
	return func(r *CompletionRequest) { r.MaxTokens = &maxTokens }
}
