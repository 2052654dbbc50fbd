package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Role tags the author of a message in a completion request.
type Role string

// Message roles
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged message in a completion request.
type Message struct {
	Role    Role
	Content string
}

// Request holds the parameters for one completion call. Tier selects the
// model, Temperature and MaxTokens come from the prompt template driving the
// call. JSONOutput constrains the model to emit a JSON document.
type Request struct {
	Messages    []Message
	Tier        ModelTier
	Temperature float32
	MaxTokens   int32
	JSONOutput  bool
}

// Completion is the result of a completion call.
type Completion struct {
	Content    string
	TokensUsed int32
	Model      string
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete sends role-tagged messages to the model and returns the generated text
	Complete(ctx context.Context, req Request) (*Completion, error)
	// GetModel returns the underlying provider model for a tier (for direct access if needed)
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	// case ProviderOpenAI:
	//     return NewOpenAIClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Complete sends role-tagged messages to the model and returns the generated text.
// System messages become the model's system instruction; the remaining history
// is replayed as a chat session ending on the last user message.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", req.Tier)
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}
	if req.JSONOutput {
		model.ResponseMIMEType = "application/json"
	}

	system, history, last, err := splitMessages(req.Messages)
	if err != nil {
		return nil, err
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}
	if req.JSONOutput {
		text = CleanJSONBlock(text)
	}

	completion := &Completion{
		Content: text,
		Model:   modelName,
	}
	if resp.UsageMetadata != nil {
		completion.TokensUsed = resp.UsageMetadata.TotalTokenCount
	}
	return completion, nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// splitMessages separates system text from conversational history and the
// final user message. Gemini has no system role in chat history, and a chat
// session must end on a user turn.
func splitMessages(messages []Message) (system string, history []*genai.Content, last string, err error) {
	var systemParts []string
	var turns []*genai.Content

	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			systemParts = append(systemParts, msg.Content)
		case RoleUser:
			turns = append(turns, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		case RoleAssistant:
			turns = append(turns, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		default:
			return "", nil, "", fmt.Errorf("unknown message role %q", msg.Role)
		}
	}

	if len(turns) == 0 {
		return "", nil, "", fmt.Errorf("at least one user message is required")
	}
	tail := turns[len(turns)-1]
	if tail.Role != "user" {
		return "", nil, "", fmt.Errorf("last message must have the user role")
	}

	if text, ok := tail.Parts[0].(genai.Text); ok {
		last = string(text)
	}
	return strings.Join(systemParts, "\n\n"), turns[:len(turns)-1], last, nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
