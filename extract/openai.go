/*
openai.go - OpenAI-backed Completer

PURPOSE:
  Implements the Completer interface over the OpenAI chat-completions
  API. This is the only file that knows about the SDK; everything else
  in the package talks to the Completer interface so tests run with a
  stub and no network.

TIMEOUTS:
  None beyond the SDK transport defaults. Callers needing bounded
  latency impose their own deadline on ctx.
*/
package extract

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultOpenAIModel = openai.ChatModelGPT4oMini

type OpenAICompleter struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAICompleter builds a completer for the given API key. An
// empty model selects the default.
func NewOpenAICompleter(apiKey, model string) *OpenAICompleter {
	m := openai.ChatModel(model)
	if model == "" {
		m = defaultOpenAIModel
	}
	return &OpenAICompleter{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  m,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}
	return resp.Choices[0].Message.Content, nil
}
