package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured answer per call. The engine treats
// every provider the same way: a question comes back as validated JSON or
// the error says why not.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the provider for JSON and is enforced on the
	// answer before it is returned. Without it Content is the raw text.
	Schema *Schema

	MaxTokens int
	// Temperature of zero leaves the provider default in place.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name doubles as the OpenAI schema name and
// the compiled-schema cache key, so it must be unique per shape.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a provider answer. StopReason is "end" or "max_tokens".
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// finish applies the checks every provider shares to a raw answer: a
// structured answer cut off at the token limit is unusable, and otherwise
// the content must satisfy req.Schema.
func finish(req Request, resp *Response) (*Response, error) {
	if req.Schema == nil {
		return resp, nil
	}
	if resp.StopReason == stopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	content, err := checkResponse(req.Schema, resp.Content)
	if err != nil {
		return nil, err
	}
	resp.Content = content
	return resp, nil
}

// resolveModel maps a short alias to a provider model ID. Unknown names are
// passed through so full model IDs work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
