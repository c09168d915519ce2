// Package insights turns the dashboard metrics into a short natural-language
// summary via Gemini.
package insights

import (
	"context"
	"fmt"
	"math"
	"strings"

	"google.golang.org/genai"

	"github.com/dkapoor/netsales-dashboard/internal/pipeline"
)

// Summarizer generates one-paragraph readings of the dashboard metrics.
type Summarizer struct {
	model string
}

// NewSummarizer creates a summarizer for the given Gemini model name.
func NewSummarizer(model string) *Summarizer {
	return &Summarizer{model: model}
}

// Summarize sends the metrics to the model and returns its plain-text answer.
func (s *Summarizer) Summarize(ctx context.Context, metrics pipeline.Metrics) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("Summarize: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildPrompt(metrics)},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Summarize: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("Summarize: empty response from model")
	}
	return text, nil
}

func buildPrompt(m pipeline.Metrics) string {
	growth := "not available"
	if !math.IsNaN(m.GrowthPercent) {
		growth = fmt.Sprintf("%.1f%%", m.GrowthPercent)
	}

	return "You are a sales analyst writing for a branch dashboard.\n\n" +
		"Write ONE short paragraph (3 sentences max) summarizing these figures.\n" +
		"Plain text only, no Markdown, no bullet points.\n\n" +
		fmt.Sprintf("Total positive amount: %s\n", pipeline.FormatCurrency(m.TotalPositive)) +
		fmt.Sprintf("Total negative amount: %s\n", pipeline.FormatCurrency(m.TotalNegative)) +
		fmt.Sprintf("Active relationship managers: %d\n", m.DistinctEntities) +
		fmt.Sprintf("Revenue growth vs last quarter: %s\n", growth)
}
