package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/mcpchat/log"
	"github.com/va6996/mcpchat/tools"
)

const systemPrompt = `You are a helpful assistant with access to live weather and news tools.

- Use get_weather when the user asks about current conditions in a city.
- Use get_news when the user asks about recent events or headlines on a topic.
- You may call several tools for one question, then combine the results.
- If a tool returns an error message, tell the user plainly what went wrong.
- Answer conversationally and keep answers concise.`

// generateFunc produces the final answer for one turn
type generateFunc func(ctx context.Context, system string, history []*ai.Message, prompt string) (string, error)

// Assistant answers user turns with a model that may call the registered tools.
type Assistant struct {
	genkit   *genkit.Genkit
	model    ai.Model
	tools    []ai.ToolRef
	maxTurns int
	history  *History
	now      func() time.Time
	generate generateFunc
}

// AssistantOptions tunes an Assistant
type AssistantOptions struct {
	// MaxTurns bounds the model/tool round trips within one answer.
	MaxTurns int
	// HistoryTurns is how many past turns are sent with each prompt.
	HistoryTurns int
}

// NewAssistant defines one genkit tool per capability in registry and binds
// them to model.
func NewAssistant(gk *genkit.Genkit, model ai.Model, registry *tools.Registry, opts AssistantOptions) *Assistant {
	a := &Assistant{
		genkit:   gk,
		model:    model,
		maxTurns: opts.MaxTurns,
		history:  NewHistory(opts.HistoryTurns),
		now:      time.Now,
	}
	if a.maxTurns <= 0 {
		a.maxTurns = 5
	}

	for _, c := range registry.List() {
		tool := genkit.DefineToolWithInputSchema(gk, c.Name, tools.Describe(c), tools.InputSchema(c.Params), toolFunc(c))
		a.tools = append(a.tools, tool)
	}
	a.generate = a.generateWithModel
	return a
}

// Tools returns the tool references bound to the model
func (a *Assistant) Tools() []ai.ToolRef {
	return a.tools
}

// History returns the conversation memory
func (a *Assistant) History() *History {
	return a.history
}

// Respond runs one turn. Only answered turns are remembered.
func (a *Assistant) Respond(ctx context.Context, input string) (string, error) {
	system := fmt.Sprintf("Today is %s.\n%s", a.now().Format("2006-01-02"), systemPrompt)

	log.Debugf(ctx, "Generating answer with %d tools and %d past turns", len(a.tools), a.history.Len())
	answer, err := a.generate(ctx, system, a.history.Messages(), input)
	if err != nil {
		return "", err
	}

	a.history.Append(input, answer)
	return answer, nil
}

func (a *Assistant) generateWithModel(ctx context.Context, system string, history []*ai.Message, prompt string) (string, error) {
	opts := []ai.GenerateOption{
		ai.WithModel(a.model),
		ai.WithSystem(system),
		ai.WithPrompt(prompt),
		ai.WithMaxTurns(a.maxTurns),
	}
	if len(history) > 0 {
		opts = append(opts, ai.WithMessages(history...))
	}
	if len(a.tools) > 0 {
		opts = append(opts, ai.WithTools(a.tools...))
	}

	response, err := genkit.Generate(ctx, a.genkit, opts...)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	return response.Text(), nil
}

// toolFunc adapts a capability to a genkit tool. Invocation errors are
// handed back to the model as text so the turn can continue.
func toolFunc(c tools.Capability) ai.ToolFunc[any, string] {
	return func(ctx *ai.ToolContext, input any) (string, error) {
		log.Infof(ctx, "Tool %s called with %v", c.Name, input)

		args, _ := input.(map[string]any)
		out, err := c.Invoke(ctx, args)
		if err != nil {
			log.Errorf(ctx, "Tool %s failed: %v", c.Name, err)
			return fmt.Sprintf("Error calling %s: %v", c.Name, err), nil
		}
		return out, nil
	}
}
