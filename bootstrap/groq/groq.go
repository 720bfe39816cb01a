// Groq plugin for Firebase Genkit Go.
// Provides integration with Groq's OpenAI-compatible API.

package groq

import (
	"context"
	"os"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai"
	"github.com/openai/openai-go/option"
)

const (
	provider = "groq"

	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1/"
)

// ToolCalling is what Groq chat models support.
var ToolCalling = ai.ModelSupports{
	Multiturn:  true,
	Tools:      true,
	SystemRole: true,
}

// defaultModels are defined on every Init.
var defaultModels = []string{
	"llama3-8b-8192",
	"llama-3.1-8b-instant",
	"llama-3.3-70b-versatile",
}

// Groq is a plugin that provides integration with models hosted on Groq.
type Groq struct {
	// APIKey is the API key for the Groq API. If empty, the value of the environment variable "GROQ_API_KEY" will be consulted.
	APIKey string
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Models are defined in addition to the defaults.
	Models []string

	openAICompatible *compat_oai.OpenAICompatible
}

// Name implements genkit.Plugin.
func (g *Groq) Name() string {
	return provider
}

// Init implements genkit.Plugin.
func (g *Groq) Init(ctx context.Context) []api.Action {
	apiKey := g.APIKey
	baseURL := g.BaseURL

	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if apiKey == "" {
		panic("groq plugin initialization failed: apiKey is required (set GROQ_API_KEY or pass APIKey)")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if g.openAICompatible == nil {
		g.openAICompatible = &compat_oai.OpenAICompatible{}
	}
	g.openAICompatible.Opts = []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	}
	g.openAICompatible.Provider = provider

	var actions []api.Action
	actions = append(actions, g.openAICompatible.Init(ctx)...)

	for _, model := range ModelNames(g.Models) {
		actions = append(actions, g.DefineModel(model, ai.ModelOptions{
			Label:    "Groq " + model,
			Supports: &ToolCalling,
			Versions: []string{model},
		}).(api.Action))
	}

	return actions
}

// ModelNames returns the default models followed by extra, without
// duplicates or empty names.
func ModelNames(extra []string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range append(append([]string(nil), defaultModels...), extra...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Model returns a model by name.
func (g *Groq) Model(gk *genkit.Genkit, name string) ai.Model {
	return g.openAICompatible.Model(gk, api.NewName(provider, name))
}

// DefineModel defines a model with the given ID and options.
func (g *Groq) DefineModel(id string, opts ai.ModelOptions) ai.Model {
	return g.openAICompatible.DefineModel(provider, id, opts)
}

// ListActions returns a list of actions provided by this plugin.
func (g *Groq) ListActions(ctx context.Context) []api.ActionDesc {
	return g.openAICompatible.ListActions(ctx)
}

// ResolveAction resolves an action by type and name.
func (g *Groq) ResolveAction(atype api.ActionType, name string) api.Action {
	return g.openAICompatible.ResolveAction(atype, name)
}
