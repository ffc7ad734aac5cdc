// Package explain provides optional AI explanations for failed exercise
// runs. The checking pipeline never depends on it being configured.
package explain

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Explainer produces a short explanation of an already-finalized failure.
type Explainer interface {
	Explain(ctx context.Context, source, failure string) (string, error)
}

// GenAIExplainer talks to the Gemini API.
type GenAIExplainer struct {
	client *genai.Client
	model  string
}

// NewGenAIExplainer constructs an explainer, or an error when no API key is
// given. Callers treat a nil explainer as "feature disabled".
func NewGenAIExplainer(ctx context.Context, apiKey, model string) (*GenAIExplainer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("explainer API key is required")
	}

	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAIExplainer{client: client, model: model}, nil
}

// Explain implements Explainer. The prompt carries the learner's source and
// the final failure text; the answer is returned verbatim for rendering.
func (e *GenAIExplainer) Explain(ctx context.Context, source, failure string) (string, error) {
	prompt := fmt.Sprintf(
		"A learner's Go exercise solution failed its hidden tests.\n\n"+
			"Solution:\n%s\n\nFailure:\n%s\n\n"+
			"Explain in a few sentences what is wrong and hint at a fix "+
			"without giving the full corrected code.",
		source, failure,
	)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("explanation request failed: %w", err)
	}

	return result.Text(), nil
}
