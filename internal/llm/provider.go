package llm

import "context"

// Provider is the abstraction over hosted LLM APIs. The agent only ever
// does single-turn generation: one system prompt, one user prompt,
// markdown text back.
type Provider interface {
	// Generate sends the prompt and returns the generated text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System sets the LLM's role and constraints.
	System string

	// Prompt is the user message.
	Prompt string

	// MaxTokens limits the response length. Zero means provider default.
	MaxTokens int

	// Temperature controls randomness. Default 0 (deterministic).
	Temperature float64
}

// Response holds the LLM's output.
type Response struct {
	Text  string
	Model string
	Usage Usage
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
