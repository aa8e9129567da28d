package ai

import (
	"context"
	"fmt"

	"github.com/zatekoja/smart-health-assistant/internal/domain/entities"
	"github.com/zatekoja/smart-health-assistant/internal/domain/providers"
	"github.com/zatekoja/smart-health-assistant/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/smart-health-assistant/pkg/errors"
)

const (
	physicalRole = "Medical Triage Doctor"
	mentalRole   = "Mental Health Expert"

	rawLogLimit = 1000
)

// GeminiAdapter implements TriageProvider on top of a Gemini text generator.
// All output normalization happens here: callers receive either a fully
// parsed record or an error, never raw model text.
type GeminiAdapter struct {
	generator providers.TextGenerator
}

// NewGeminiAdapter creates a triage provider backed by a text generator.
func NewGeminiAdapter(generator providers.TextGenerator) *GeminiAdapter {
	return &GeminiAdapter{generator: generator}
}

// Assess analyzes symptoms and returns a structured triage record.
func (a *GeminiAdapter) Assess(ctx context.Context, symptoms string, mentalHealth bool) (*entities.TriageResult, error) {
	role := physicalRole
	if mentalHealth {
		role = mentalRole
	}

	raw, err := a.generator.Generate(ctx, buildTriagePrompt(role, symptoms))
	if err != nil {
		return nil, apperrors.NewExternalError("ai generation failed", err)
	}

	logger := observability.LoggerFromContext(ctx)
	logger.Debug().Str("raw", truncate(raw, rawLogLimit)).Msg("AI raw output")

	triage := RepairTriage(raw)
	if triage == nil {
		logger.Warn().Str("raw", raw).Msg("AI returned text but parsing JSON failed")
		return nil, apperrors.NewExternalError("ai failed to generate valid JSON", nil)
	}

	return triage, nil
}

// Generate exposes the raw generation call for the debug surface.
func (a *GeminiAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	return a.generator.Generate(ctx, prompt)
}

func buildTriagePrompt(role, symptoms string) string {
	return fmt.Sprintf(
		"Act as a %s. Analyze these symptoms: %s. "+
			"Return JSON ONLY with: urgency, summary, possible_conditions (list), "+
			"advice (list), specialist (string), and emergency (bool).",
		role, symptoms,
	)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
