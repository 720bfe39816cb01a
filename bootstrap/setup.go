package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"github.com/va6996/mcpchat/agents"
	"github.com/va6996/mcpchat/bootstrap/groq"
	"github.com/va6996/mcpchat/config"
	"github.com/va6996/mcpchat/console"
	"github.com/va6996/mcpchat/log"
	"github.com/va6996/mcpchat/providers/mcp"
	"github.com/va6996/mcpchat/tools"
)

// Provider names, also the argument of the serve subcommand.
const (
	WeatherServer = "weather"
	NewsServer    = "news"
)

// App holds the initialized components of the application
type App struct {
	Genkit    *genkit.Genkit
	Model     ai.Model
	Registry  *tools.Registry
	Assistant *agents.Assistant
	Providers *mcp.Manager
}

// Close shuts down the tool providers.
func (a *App) Close() error {
	if a == nil || a.Providers == nil {
		return nil
	}
	return a.Providers.Close()
}

// Setup initializes the application components based on the configuration.
// On failure every provider already started is stopped.
func Setup(ctx context.Context, cfg *config.Config, out *console.Console) (*App, error) {
	// 1. Launch tool providers
	command, err := ServerCommand(cfg)
	if err != nil {
		return nil, err
	}

	out.Status("Connecting to MCP servers...")
	providers, err := mcp.NewManager(ctx, ProviderSpecs(cfg, command, os.Environ()))
	if err != nil {
		return nil, err
	}

	// 2. Discover their tools
	registry := tools.NewRegistry()
	count, err := providers.RegisterTools(ctx, registry)
	if err != nil {
		providers.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	out.Success("Connected! Found %d MCP tools.", count)

	// 3. Setup Genkit with AI Plugin
	gk, model, err := initModel(ctx, cfg)
	if err != nil {
		providers.Close()
		return nil, err
	}

	// 4. Bind tools to the model
	assistant := agents.NewAssistant(gk, model, registry, agents.AssistantOptions{
		MaxTurns:     cfg.AI.MaxTurns,
		HistoryTurns: cfg.Chat.HistoryTurns,
	})

	return &App{
		Genkit:    gk,
		Model:     model,
		Registry:  registry,
		Assistant: assistant,
		Providers: providers,
	}, nil
}

func initModel(ctx context.Context, cfg *config.Config) (*genkit.Genkit, ai.Model, error) {
	switch strings.ToLower(cfg.AI.Plugin) {
	case "ollama":
		log.Infof(ctx, "Using Ollama Plugin (Model: %s)...", cfg.AI.Ollama.Model)
		ollamaPlugin := &ollama.Ollama{
			ServerAddress: cfg.AI.Ollama.BaseURL,
		}
		gk := genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))

		model := ollamaPlugin.DefineModel(gk, ollama.ModelDefinition{
			Name: cfg.AI.Ollama.Model,
			Type: "chat",
		}, &ai.ModelOptions{
			Supports: &ai.ModelSupports{
				Multiturn:  true,
				SystemRole: true,
				Tools:      true,
				Media:      false,
			},
		})
		return gk, model, nil

	case "gemini":
		log.Infof(ctx, "Using Gemini Plugin (Model: %s)...", cfg.AI.Gemini.Model)
		if cfg.AI.Gemini.APIKey == "" {
			return nil, nil, fmt.Errorf("%s must be set", config.GeminiAPIKeyEnv)
		}
		gk := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{
			APIKey: cfg.AI.Gemini.APIKey,
		}))
		return gk, googlegenai.GoogleAIModel(gk, cfg.AI.Gemini.Model), nil

	case "groq":
		log.Infof(ctx, "Using Groq Plugin (Model: %s)...", cfg.AI.Groq.Model)
		if cfg.AI.Groq.APIKey == "" {
			return nil, nil, fmt.Errorf("%s must be set", config.GroqAPIKeyEnv)
		}
		groqPlugin := &groq.Groq{
			APIKey:  cfg.AI.Groq.APIKey,
			BaseURL: cfg.AI.Groq.BaseURL,
			Models:  []string{cfg.AI.Groq.Model},
		}
		gk := genkit.Init(ctx, genkit.WithPlugins(groqPlugin))
		return gk, groqPlugin.Model(gk, cfg.AI.Groq.Model), nil
	}
	return nil, nil, fmt.Errorf("unknown AI plugin %q", cfg.AI.Plugin)
}

// ServerCommand returns the executable that serves the tool providers.
func ServerCommand(cfg *config.Config) (string, error) {
	if cfg.Servers.Command != "" {
		return cfg.Servers.Command, nil
	}
	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return self, nil
}

// ProviderSpecs returns the launch table of the tool providers. Each one
// inherits environ without any secret and is handed only its own key and
// settings.
func ProviderSpecs(cfg *config.Config, command string, environ []string) []mcp.ServerSpec {
	secrets := config.SecretNames()

	weatherEnv := map[string]string{
		config.WeatherAPIKeyEnv: cfg.Weather.APIKey,
		"OPENWEATHER_BASE_URL":  cfg.Weather.BaseURL,
		"WEATHER_TIMEOUT":       cfg.Weather.Timeout.String(),
		"LOG_LEVEL":             cfg.Log.Level,
	}
	newsEnv := map[string]string{
		config.NewsAPIKeyEnv: cfg.News.APIKey,
		"NEWS_BASE_URL":      cfg.News.BaseURL,
		"NEWS_TIMEOUT":       cfg.News.Timeout.String(),
		"LOG_LEVEL":          cfg.Log.Level,
	}

	return []mcp.ServerSpec{
		{
			Name:    WeatherServer,
			Command: command,
			Args:    []string{"serve", WeatherServer},
			Env:     mcp.ChildEnv(environ, secrets, weatherEnv),
		},
		{
			Name:    NewsServer,
			Command: command,
			Args:    []string{"serve", NewsServer},
			Env:     mcp.ChildEnv(environ, secrets, newsEnv),
		},
	}
}
