package prompt

import (
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/domain"
)

// Composer turns a request profile into the prompt sent to the model.
// Compose is a pure function of the profile: same profile, same prompt.
type Composer struct {
	builder *PromptBuilder
	logger  *zap.Logger
}

func NewComposer(builder *PromptBuilder, logger *zap.Logger) *Composer {
	if builder == nil {
		builder = DefaultPromptBuilder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{builder: builder, logger: logger}
}

// Compose never fails. A template that cannot be loaded or rendered is
// replaced by FallbackPrompt, which carries the same sections.
func (c *Composer) Compose(profile domain.Profile) string {
	data := PromptData{
		Language: profile.TargetLanguage(),
		Fields:   profile.Fields(),
	}

	rendered, err := c.builder.Render(TemplateFor(profile.Feature()), data)
	if err == nil && strings.TrimSpace(rendered) != "" {
		return rendered
	}

	c.logger.Warn("Prompt template unavailable, using fallback prompt",
		zap.String("feature", profile.Feature().String()),
		zap.Error(err),
	)
	return FallbackPrompt(profile.Feature(), data)
}
