package google

import (
	"context"
	"fmt"
	"os"

	"inbox/internal/app"

	"google.golang.org/genai"
)

const defaultModel = "gemini-flash-latest"

// Adapter implements app.LLMAdapter using Google's Generative AI function calling
type Adapter struct {
	model  string
	client *genai.Client
}

// NewAdapter creates a new Google AI adapter
// It expects the API key in config or in the GOOGLE_API_KEY environment variable
// An empty model selects gemini-flash-latest
func NewAdapter(ctx context.Context, model string, config *genai.ClientConfig) (*Adapter, error) {
	if config == nil {
		config = &genai.ClientConfig{}
	}

	// If API Key is not set in config, try env var
	if config.APIKey == "" {
		config.APIKey = os.Getenv("GOOGLE_API_KEY")
	}

	// We allow empty API key if custom HTTP client is provided (e.g. for VCR replay),
	// otherwise we expect it.
	if config.APIKey == "" && config.HTTPClient == nil {
		return nil, fmt.Errorf("GOOGLE_API_KEY environment variable not set")
	}

	if config.Backend == genai.BackendUnspecified {
		config.Backend = genai.BackendGeminiAPI
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	if model == "" {
		model = defaultModel
	}

	return &Adapter{
		model:  model,
		client: client,
	}, nil
}

// Model returns the model name requests are sent to
func (a *Adapter) Model() string {
	return a.model
}

// Call sends the prompt and forces the model to answer with one of the request's tools
func (a *Adapter) Call(ctx context.Context, req app.Request) (*app.ToolCall, error) {
	config, err := buildConfig(req)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	calls := resp.FunctionCalls()
	if len(calls) == 0 {
		return nil, fmt.Errorf("%w: %q", app.ErrNoToolCall, resp.Text())
	}

	// Only the first call is honoured; the dispatcher drives any follow-up itself.
	call := calls[0]
	args := call.Args
	if args == nil {
		args = map[string]interface{}{}
	}

	return &app.ToolCall{Name: call.Name, Args: args}, nil
}

func buildConfig(req app.Request) (*genai.GenerateContentConfig, error) {
	declarations := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
	names := make([]string, 0, len(req.Tools))

	for _, tool := range req.Tools {
		schema, err := tool.JSONSchemaMap()
		if err != nil {
			return nil, err
		}
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:                 tool.Name,
			Description:          tool.Description,
			ParametersJsonSchema: schema,
		})
		names = append(names, tool.Name)
	}

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{FunctionDeclarations: declarations}},
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode:                 genai.FunctionCallingConfigModeAny,
				AllowedFunctionNames: names,
			},
		},
	}

	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	return config, nil
}
