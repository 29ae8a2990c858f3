// Package ai is the client for the chat-completions gateway that generates
// plain-language summaries, pro/con arguments, impact analyses and progress
// timelines. Structured responses are constrained with tool schemas; the
// field names and enums in those schemas are a persisted contract and must
// not drift.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"legisync/internal/domain"
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Gateway struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Gateway {
	return &Gateway{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		logger:  logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type toolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

type chatTool struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type toolChoice struct {
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Tools      []chatTool    `json:"tools,omitempty"`
	ToolChoice *toolChoice   `json:"tool_choice,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

func forceTool(name string) *toolChoice {
	tc := &toolChoice{Type: "function"}
	tc.Function.Name = name
	return tc
}

// Summarize produces a plain-language summary at the given reading level
// ("middle", "high" or "college").
func (g *Gateway) Summarize(ctx context.Context, billText, readingLevel string) (string, error) {
	var level string
	switch readingLevel {
	case "middle":
		level = "middle school (ages 11-14)"
	case "high":
		level = "high school (ages 14-18)"
	default:
		level = "college level (ages 18+)"
	}

	resp, err := g.complete(ctx, chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{
				Role: "system",
				Content: fmt.Sprintf("You are an expert at explaining complex legislation in plain English for students. "+
					"Create summaries appropriate for %s. Use emojis to make it engaging. "+
					"Format your response with clear sections: Main Goal, Budget Impact, Who It Affects, Timeline, and Key Points (as bullet points).", level),
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("Please summarize this bill in plain English appropriate for %s:\n\n%s", level, billText),
			},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty summary in gateway response", domain.ErrUpstreamParse)
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateArguments returns exactly six balanced arguments, three per side.
func (g *Gateway) GenerateArguments(ctx context.Context, billTitle, billText string) ([]domain.Argument, error) {
	resp, err := g.complete(ctx, chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{
				Role: "system",
				Content: "You are an expert policy analyst who provides balanced, fact-based arguments for and against legislative bills. " +
					"Generate 3 arguments supporting the bill and 3 arguments opposing it. " +
					"Each argument should be clear, concise, and cite a credible perspective or source.",
			},
			{
				Role: "user",
				Content: fmt.Sprintf("Generate balanced arguments for and against this bill:\n\nTitle: %s\n\nBill Text: %s\n\n"+
					"Provide 3 supporting arguments and 3 opposing arguments. Each should be factual, balanced, and represent real stakeholder perspectives.",
					billTitle, billText),
			},
		},
		Tools: []chatTool{{
			Type: "function",
			Function: toolFunction{
				Name:        "return_arguments",
				Description: "Return the for and against arguments for a bill",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"arguments": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"side": map[string]any{
										"type":        "string",
										"enum":        []string{"for", "against"},
										"description": "Whether this argument supports or opposes the bill",
									},
									"text": map[string]any{
										"type":        "string",
										"description": "The argument text, 2-3 sentences max",
									},
									"source": map[string]any{
										"type":        "string",
										"description": "The perspective or stakeholder group this represents (e.g., 'Education advocates', 'Fiscal conservatives', 'Healthcare providers')",
									},
								},
								"required":             []string{"side", "text", "source"},
								"additionalProperties": false,
							},
							"minItems": 6,
							"maxItems": 6,
						},
					},
					"required":             []string{"arguments"},
					"additionalProperties": false,
				},
			},
		}},
		ToolChoice: forceTool("return_arguments"),
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Arguments []domain.Argument `json:"arguments"`
	}
	if err := g.decodeToolCall(resp, &payload); err != nil {
		return nil, err
	}

	var forCount, againstCount int
	for _, arg := range payload.Arguments {
		switch arg.Side {
		case "for":
			forCount++
		case "against":
			againstCount++
		}
	}
	if len(payload.Arguments) != 6 || forCount != 3 || againstCount != 3 {
		return nil, fmt.Errorf("%w: expected 6 arguments (3 per side), got %d for / %d against",
			domain.ErrUpstreamParse, forCount, againstCount)
	}

	return payload.Arguments, nil
}

// ImpactInput carries the bill fields the impact analysis is based on.
type ImpactInput struct {
	BillTitle        string
	BillNumber       string
	ShortDescription string
	FullText         string
}

// AnalyzeImpact returns the structured impact analysis for a bill.
func (g *Gateway) AnalyzeImpact(ctx context.Context, in ImpactInput) (*domain.ImpactData, error) {
	fullText := in.FullText
	if len(fullText) > 2000 {
		fullText = fullText[:2000]
	}

	resp, err := g.complete(ctx, chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a policy analyst expert. Analyze the bill and provide comprehensive impact analysis.",
			},
			{
				Role: "user",
				Content: fmt.Sprintf(`Analyze the impact of this bill:
Bill Number: %s
Title: %s
Description: %s
Full Text: %s

Provide analysis including:
- Affected population (who this impacts)
- Cost estimate (financial implications)
- Geographic scope (where this applies)
- Timeline (implementation timeframe)
- Affected sectors (industries/areas impacted)`, in.BillNumber, in.BillTitle, in.ShortDescription, fullText),
			},
		},
		Tools: []chatTool{{
			Type: "function",
			Function: toolFunction{
				Name:        "return_impact",
				Description: "Return the bill impact analysis",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"affected_population": map[string]any{"type": "string"},
						"cost_estimate":       map[string]any{"type": "string"},
						"geographic_scope":    map[string]any{"type": "string"},
						"timeline":            map[string]any{"type": "string"},
						"sectors": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"required": []string{"affected_population", "cost_estimate", "geographic_scope", "timeline", "sectors"},
				},
			},
		}},
		ToolChoice: forceTool("return_impact"),
	})
	if err != nil {
		return nil, err
	}

	var impact domain.ImpactData
	if err := g.decodeToolCall(resp, &impact); err != nil {
		return nil, err
	}

	return &impact, nil
}

// StagesInput carries the bill fields the timeline is generated from.
type StagesInput struct {
	BillTitle  string
	BillNumber string
	Status     domain.Status
}

// GenerateStages returns an ordered progress timeline for a bill.
func (g *Gateway) GenerateStages(ctx context.Context, in StagesInput) ([]domain.Stage, error) {
	resp, err := g.complete(ctx, chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a legislative expert. Generate realistic bill progress stages based on the bill information and current status.",
			},
			{
				Role: "user",
				Content: fmt.Sprintf(`Generate legislative progress stages for this bill:
Bill Number: %s
Title: %s
Current Status: %s

Return stages with these statuses:
- "completed" for stages already done
- "current" for the active stage
- "pending" for future stages

Include typical congressional stages like: Introduced, Committee Review, House Vote, Senate Vote, Presidential Action, etc.`,
					in.BillNumber, in.BillTitle, in.Status),
			},
		},
		Tools: []chatTool{{
			Type: "function",
			Function: toolFunction{
				Name:        "return_stages",
				Description: "Return the bill stages",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"stages": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"name":   map[string]any{"type": "string"},
									"status": map[string]any{"type": "string", "enum": []string{"completed", "current", "pending"}},
									"date":   map[string]any{"type": "string"},
								},
								"required": []string{"name", "status"},
							},
						},
					},
					"required": []string{"stages"},
				},
			},
		}},
		ToolChoice: forceTool("return_stages"),
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Stages []domain.Stage `json:"stages"`
	}
	if err := g.decodeToolCall(resp, &payload); err != nil {
		return nil, err
	}
	if len(payload.Stages) == 0 {
		return nil, fmt.Errorf("%w: no stages in gateway response", domain.ErrUpstreamParse)
	}

	return payload.Stages, nil
}

func (g *Gateway) complete(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: AI gateway API key missing", domain.ErrConfiguration)
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request: %v", domain.ErrUpstreamGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Error("AI gateway returned error", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrUpstreamGateway, resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamParse, err)
	}

	return &chatResp, nil
}

func (g *Gateway) decodeToolCall(resp *chatResponse, out any) error {
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return fmt.Errorf("%w: no tool call in gateway response", domain.ErrUpstreamParse)
	}

	args := resp.Choices[0].Message.ToolCalls[0].Function.Arguments
	if err := json.Unmarshal([]byte(args), out); err != nil {
		return fmt.Errorf("%w: decode tool arguments: %v", domain.ErrUpstreamParse, err)
	}
	return nil
}
