package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/y-ymmt/ikitaitoko-bot/pkg/llm"
)

// maxToolRounds bounds the tool-use loop so a misbehaving model cannot spin
// the agent forever.
const maxToolRounds = 8

// Provider implements llm.Provider using Anthropic's Messages API.
type Provider struct {
	client    sdk.Client
	model     string
	maxTokens int
}

func NewProvider(apiKey, model string, maxTokens int) *Provider {
	return &Provider{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (p *Provider) Chat(ctx context.Context, system string, history []llm.Message, options ...llm.Option) (string, error) {
	params := p.newParams(system, history, options...)

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}
	return textContent(msg), nil
}

func (p *Provider) ChatWithTools(ctx context.Context, system string, history []llm.Message, tools []llm.ToolDef, exec llm.ToolExecutor, options ...llm.Option) (string, error) {
	params := p.newParams(system, history, options...)

	toolParams := make([]sdk.ToolUnionParam, len(tools))
	for i, t := range tools {
		tool := sdk.ToolParam{
			Name:        t.Name,
			Description: sdk.String(t.Description),
			InputSchema: sdk.ToolInputSchemaParam{
				Properties: t.Properties,
				Required:   t.Required,
			},
		}
		toolParams[i] = sdk.ToolUnionParam{OfTool: &tool}
	}
	params.Tools = toolParams

	for round := 0; round < maxToolRounds; round++ {
		msg, err := p.client.Messages.New(ctx, params)
		if err != nil {
			return "", err
		}

		var toolResults []sdk.ContentBlockParamUnion
		for _, block := range msg.Content {
			if variant, ok := block.AsAny().(sdk.ToolUseBlock); ok {
				args := json.RawMessage(variant.JSON.Input.Raw())
				content, isError := exec(ctx, variant.Name, args)
				toolResults = append(toolResults, sdk.NewToolResultBlock(variant.ID, content, isError))
			}
		}

		if len(toolResults) == 0 {
			return textContent(msg), nil
		}

		params.Messages = append(params.Messages, msg.ToParam(), sdk.NewUserMessage(toolResults...))
	}
	return "", fmt.Errorf("tool loop did not settle within %d rounds", maxToolRounds)
}

func (p *Provider) newParams(system string, history []llm.Message, options ...llm.Option) sdk.MessageNewParams {
	opts := llm.Options{Model: p.model, MaxTokens: p.maxTokens}
	for _, o := range options {
		o(&opts)
	}

	messages := make([]sdk.MessageParam, len(history))
	for i, m := range history {
		if m.Role == llm.RoleAssistant {
			messages[i] = sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content))
		} else {
			messages[i] = sdk.NewUserMessage(sdk.NewTextBlock(m.Content))
		}
	}

	return sdk.MessageNewParams{
		Model:     sdk.Model(opts.Model),
		MaxTokens: int64(opts.MaxTokens),
		System:    []sdk.TextBlockParam{{Text: system}},
		Messages:  messages,
	}
}

func textContent(msg *sdk.Message) string {
	var b strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(sdk.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return b.String()
}
