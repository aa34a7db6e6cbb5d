package ai

import "github.com/kapu/sheos-insight-go/internal/schema"

// ModelPreset represents the model usage preset
type ModelPreset string

const (
	PresetCreative ModelPreset = "creative"
	PresetPrecise  ModelPreset = "precise"
	PresetBalanced ModelPreset = "balanced"
)

// ModelConfig holds Gemini sampling configuration
type ModelConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

// OpenAIConfig holds OpenAI-specific configuration
type OpenAIConfig struct {
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// GenerateMetadata describes which provider answered. It is also returned
// with an error, naming the last provider tried.
type GenerateMetadata struct {
	Provider     string
	Model        string
	UsedFailover bool
}

// GenerateOptions holds per-call options for AI generation
type GenerateOptions struct {
	Model     string
	Preset    ModelPreset
	Overrides *ModelConfig
}

// Request is one provider call. A nil Schema asks for plain text.
type Request struct {
	Prompt  string
	Schema  *schema.Schema
	Options GenerateOptions
}

func (r Request) preset() ModelPreset {
	if r.Options.Preset != "" {
		return r.Options.Preset
	}
	if r.Schema == nil {
		return PresetCreative
	}
	return PresetBalanced
}

// GetPresetConfig returns the configuration for a preset
func GetPresetConfig(preset ModelPreset) ModelConfig {
	switch preset {
	case PresetCreative:
		return ModelConfig{
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 1024,
		}
	case PresetPrecise:
		return ModelConfig{
			Temperature:     0.1,
			TopP:            0.9,
			TopK:            20,
			MaxOutputTokens: 2048,
		}
	case PresetBalanced:
		return ModelConfig{
			Temperature:     0.4,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 4096,
		}
	default:
		return GetPresetConfig(PresetBalanced)
	}
}

// GetOpenAIPresetConfig returns OpenAI configuration for a preset
func GetOpenAIPresetConfig(preset ModelPreset) OpenAIConfig {
	switch preset {
	case PresetCreative:
		return OpenAIConfig{
			Temperature: 0.7,
			MaxTokens:   1024,
			TopP:        0.95,
		}
	case PresetPrecise:
		return OpenAIConfig{
			Temperature: 0.1,
			MaxTokens:   2048,
			TopP:        0.9,
		}
	case PresetBalanced:
		return OpenAIConfig{
			Temperature: 0.4,
			MaxTokens:   4096,
			TopP:        0.95,
		}
	default:
		return GetOpenAIPresetConfig(PresetBalanced)
	}
}

func applyOverrides(config ModelConfig, overrides *ModelConfig) ModelConfig {
	if overrides == nil {
		return config
	}
	if overrides.Temperature > 0 {
		config.Temperature = overrides.Temperature
	}
	if overrides.TopP > 0 {
		config.TopP = overrides.TopP
	}
	if overrides.TopK > 0 {
		config.TopK = overrides.TopK
	}
	if overrides.MaxOutputTokens > 0 {
		config.MaxOutputTokens = overrides.MaxOutputTokens
	}
	return config
}
