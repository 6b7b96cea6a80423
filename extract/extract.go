// Package extract turns unstructured citizen text into a draft issue
// report using the Anthropic API. The draft is best-effort: callers always
// run it through full issue validation before filing anything.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"civictrack-be/services"
)

// Client wraps the Anthropic API for issue extraction.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient creates an extraction client with the given API key and model.
func NewClient(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:   &client,
		model: anthropic.Model(model),
	}
}

// buildPrompt constructs the system and user prompts for draft extraction.
func buildPrompt(text string) (system string, user string) {
	system = `You extract a structured civic issue report from a citizen's free-text complaint. Return ONLY a JSON object with these fields:
- "issueType": short category of the problem (e.g. "Pothole", "Streetlight outage", "Garbage overflow")
- "location": the street address or area the citizen describes
- "landmark": nearby landmark if mentioned, otherwise ""
- "severity": one of "low", "medium", "high", "critical"
- "description": the citizen's account of the problem, lightly cleaned up
- "impact": effect on people, traffic, or safety if mentioned, otherwise ""
- "recurrence": one of "new", "recurring", "ongoing" (default "new")
- "contactName", "contactPhone", "contactEmail": contact details if the citizen included them, otherwise ""

Rules:
- Never invent a location; if none is given, leave "location" empty
- Severity reflects danger to people first, property second
- Return valid JSON only, no markdown fencing or explanation`

	var sb strings.Builder
	sb.WriteString("Extract an issue report from this complaint:\n\n")
	sb.WriteString(text)
	user = sb.String()
	return
}

// ExtractDraft sends the complaint text to the LLM and returns a draft
// issue input. The result has not been validated.
func (c *Client) ExtractDraft(ctx context.Context, text string) (*services.CreateIssueInput, error) {
	systemPrompt, userPrompt := buildPrompt(text)

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call: %w", err)
	}

	var raw string
	for _, block := range msg.Content {
		if block.Type == "text" {
			raw = block.Text
			break
		}
	}
	if raw == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return parseDraft(raw)
}

// parseDraft decodes the model's JSON reply, tolerating markdown fencing.
func parseDraft(raw string) (*services.CreateIssueInput, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		lines := strings.SplitN(text, "\n", 2)
		if len(lines) > 1 {
			text = lines[1]
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	var draft services.CreateIssueInput
	if err := json.Unmarshal([]byte(text), &draft); err != nil {
		return nil, fmt.Errorf("parse LLM response as JSON: %w\nraw response: %s", err, raw)
	}
	return &draft, nil
}
