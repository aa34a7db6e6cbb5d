package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kapu/sheos-insight-go/pkg/errors"
)

const (
	ProviderNameGemini = "Gemini"
	ProviderNameOpenAI = "OpenAI"
)

type JSONProvider interface {
	Name() string
	Generate(ctx context.Context, req Request) (ProviderResult, error)
	Ping(ctx context.Context) bool
}

type ProviderResult struct {
	Text  string
	Model string
}

// GeminiProvider wraps the Gemini client and declares the response schema
// on every JSON request.
type GeminiProvider struct {
	client       *genai.Client
	defaultModel string
	logger       *zap.Logger
}

func NewGeminiProvider(client *genai.Client, defaultModel string, logger *zap.Logger) *GeminiProvider {
	return &GeminiProvider{
		client:       client,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

func (g *GeminiProvider) Name() string {
	return ProviderNameGemini
}

func (g *GeminiProvider) DefaultModel() string {
	return g.defaultModel
}

func (g *GeminiProvider) Generate(ctx context.Context, req Request) (ProviderResult, error) {
	if g.client == nil {
		return ProviderResult{}, errors.NewTransportError(g.Name(), 0, errNotInitialized)
	}

	modelName := modelOrDefault(req.Options.Model, g.defaultModel)
	preset := req.preset()
	config := applyOverrides(GetPresetConfig(preset), req.Options.Overrides)

	topK := float32(config.TopK)
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &config.Temperature,
		TopP:            &config.TopP,
		TopK:            &topK,
		MaxOutputTokens: int32(config.MaxOutputTokens),
	}
	if req.Schema != nil {
		genConfig.ResponseMIMEType = "application/json"
		genConfig.ResponseSchema = req.Schema.ToGenAI()
	}

	g.logger.Debug("Generating with Gemini",
		zap.String("model", modelName),
		zap.String("preset", string(preset)),
		zap.Bool("json_mode", req.Schema != nil),
	)

	resp, err := g.client.Models.GenerateContent(ctx, modelName, []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: req.Prompt},
			},
		},
	}, genConfig)
	if err != nil {
		g.logger.Error("Gemini generation failed", zap.Error(err))
		return ProviderResult{}, classify(g.Name(), err)
	}

	text := extractTextFromGeminiResponse(resp)
	if strings.TrimSpace(text) == "" {
		return ProviderResult{}, errors.NewEmptyPayloadError(g.Name())
	}

	g.logger.Debug("Gemini response received", zap.Int("length", len(text)))
	return ProviderResult{Text: text, Model: modelName}, nil
}

func (g *GeminiProvider) Ping(ctx context.Context) bool {
	if g.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	g.logger.Debug("Pinging Gemini API...")

	temp := float32(0)
	topP := float32(1)
	topK := float32(1)

	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: 10,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.defaultModel, []*genai.Content{
		{Parts: []*genai.Part{{Text: "ping"}}},
	}, config)
	if err != nil {
		g.logger.Debug("Gemini ping failed", zap.Error(err))
		return false
	}

	return extractTextFromGeminiResponse(resp) != ""
}

// OpenAIProvider wraps the OpenAI chat completion client. JSON requests carry
// the response schema in a system instruction.
type OpenAIProvider struct {
	client       *openai.Client
	defaultModel string
	logger       *zap.Logger
}

func NewOpenAIProvider(apiKey string, defaultModel string, logger *zap.Logger) *OpenAIProvider {
	if apiKey == "" {
		return nil
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		client:       &client,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

func (o *OpenAIProvider) Name() string {
	return ProviderNameOpenAI
}

func (o *OpenAIProvider) Generate(ctx context.Context, req Request) (ProviderResult, error) {
	if o.client == nil {
		return ProviderResult{}, errors.NewTransportError(o.Name(), 0, errNotInitialized)
	}

	modelName := modelOrDefault(req.Options.Model, o.defaultModel)
	preset := req.preset()
	config := GetOpenAIPresetConfig(preset)

	o.logger.Debug("Generating with OpenAI",
		zap.String("model", modelName),
		zap.String("preset", string(preset)),
		zap.Bool("json_mode", req.Schema != nil),
	)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(req.Prompt),
	}
	if req.Schema != nil {
		instruction, err := jsonInstruction(req)
		if err != nil {
			return ProviderResult{}, errors.NewTransportError(o.Name(), 0, err)
		}
		messages = []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instruction),
			openai.UserMessage(req.Prompt),
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(modelName),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(config.MaxTokens)),
	}
	if !strings.HasPrefix(modelName, "gpt-5") {
		params.Temperature = openai.Float(float64(config.Temperature))
		params.TopP = openai.Float(float64(config.TopP))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		o.logger.Error("OpenAI generation failed", zap.Error(err))
		return ProviderResult{}, classify(o.Name(), err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return ProviderResult{}, errors.NewEmptyPayloadError(o.Name())
	}

	text := resp.Choices[0].Message.Content

	o.logger.Debug("OpenAI response received",
		zap.Int("length", len(text)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	return ProviderResult{Text: text, Model: modelName}, nil
}

func (o *OpenAIProvider) Ping(ctx context.Context) bool {
	if o.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o.logger.Debug("Pinging OpenAI API...")

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.defaultModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("ping"),
		},
		MaxCompletionTokens: openai.Int(10),
	})
	if err != nil {
		o.logger.Debug("OpenAI ping failed", zap.Error(err))
		return false
	}

	return len(resp.Choices) > 0
}

func jsonInstruction(req Request) (string, error) {
	schemaDoc, err := json.Marshal(req.Schema.JSONSchema())
	if err != nil {
		return "", err
	}
	return "You must respond with valid JSON only. Do not include any text outside the JSON document.\n" +
		"The JSON must conform to this JSON Schema:\n" + string(schemaDoc), nil
}

func modelOrDefault(model, defaultModel string) string {
	if model != "" {
		return model
	}
	return defaultModel
}

func extractTextFromGeminiResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.Join(texts, "")
}
