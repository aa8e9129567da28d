package providers

import (
	"context"

	"github.com/zatekoja/smart-health-assistant/internal/domain/entities"
)

// TriageProvider produces a structured triage assessment from free-text
// symptoms. Implementations normalize the AI backend's output at this
// boundary: the result is either a fully parsed record or an error, never
// a partially repaired one.
type TriageProvider interface {
	// Assess analyzes symptoms. mentalHealth selects the expert role used
	// for the assessment.
	Assess(ctx context.Context, symptoms string, mentalHealth bool) (*entities.TriageResult, error)
}

// TextGenerator exposes the raw text-generation call behind TriageProvider.
// Used by the debug surface only.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
