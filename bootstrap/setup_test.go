package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/mcpchat/config"
	"github.com/va6996/mcpchat/providers/mcp"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.AI.Plugin = "groq"
	cfg.AI.Groq.APIKey = "groq-secret"
	cfg.AI.Gemini.APIKey = "gemini-secret"
	cfg.Weather.APIKey = "weather-secret"
	cfg.Weather.BaseURL = "https://weather.test"
	cfg.Weather.Timeout = 10 * time.Second
	cfg.News.APIKey = "news-secret"
	cfg.News.BaseURL = "https://news.test"
	cfg.News.Timeout = 10 * time.Second
	cfg.Log.Level = "warn"
	return cfg
}

func TestProviderSpecs_LeastPrivilege(t *testing.T) {
	environ := []string{
		"PATH=/usr/bin",
		"GROQ_API_KEY=groq-secret",
		"GEMINI_API_KEY=gemini-secret",
		"OPENWEATHER_API_KEY=weather-secret",
		"NEWS_API_KEY=news-secret",
	}

	specs := ProviderSpecs(testConfig(), "/usr/local/bin/mcpchat", environ)
	require.Len(t, specs, 2)

	weather, news := specs[0], specs[1]
	assert.Equal(t, WeatherServer, weather.Name)
	assert.Equal(t, []string{"serve", "weather"}, weather.Args)
	assert.Equal(t, "/usr/local/bin/mcpchat", weather.Command)
	assert.Equal(t, NewsServer, news.Name)
	assert.Equal(t, []string{"serve", "news"}, news.Args)

	v, ok := mcp.Lookup(weather.Env, config.WeatherAPIKeyEnv)
	assert.True(t, ok)
	assert.Equal(t, "weather-secret", v)
	v, ok = mcp.Lookup(news.Env, config.NewsAPIKeyEnv)
	assert.True(t, ok)
	assert.Equal(t, "news-secret", v)

	for _, name := range []string{config.NewsAPIKeyEnv, config.GroqAPIKeyEnv, config.GeminiAPIKeyEnv} {
		_, ok := mcp.Lookup(weather.Env, name)
		assert.False(t, ok, "weather provider must not see %s", name)
	}
	for _, name := range []string{config.WeatherAPIKeyEnv, config.GroqAPIKeyEnv, config.GeminiAPIKeyEnv} {
		_, ok := mcp.Lookup(news.Env, name)
		assert.False(t, ok, "news provider must not see %s", name)
	}

	for _, env := range [][]string{weather.Env, news.Env} {
		for _, kv := range env {
			assert.NotContains(t, kv, "groq-secret")
			assert.NotContains(t, kv, "gemini-secret")
		}
		_, ok := mcp.Lookup(env, "PATH")
		assert.True(t, ok)
	}
	assert.NotContains(t, weather.Env, "NEWS_API_KEY=news-secret")
	assert.NotContains(t, news.Env, "OPENWEATHER_API_KEY=weather-secret")
}

func TestProviderSpecs_Settings(t *testing.T) {
	specs := ProviderSpecs(testConfig(), "mcpchat", nil)

	v, _ := mcp.Lookup(specs[0].Env, "OPENWEATHER_BASE_URL")
	assert.Equal(t, "https://weather.test", v)
	v, _ = mcp.Lookup(specs[0].Env, "WEATHER_TIMEOUT")
	assert.Equal(t, "10s", v)
	_, ok := mcp.Lookup(specs[0].Env, "NEWS_BASE_URL")
	assert.False(t, ok)

	v, _ = mcp.Lookup(specs[1].Env, "NEWS_BASE_URL")
	assert.Equal(t, "https://news.test", v)
	v, _ = mcp.Lookup(specs[1].Env, "LOG_LEVEL")
	assert.Equal(t, "warn", v)
}

func TestServerCommand(t *testing.T) {
	cfg := testConfig()
	cfg.Servers.Command = "/opt/mcpchat"
	cmd, err := ServerCommand(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/opt/mcpchat", cmd)

	cfg.Servers.Command = ""
	cmd, err = ServerCommand(cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, cmd)
}

func TestInitModel_UnknownPlugin(t *testing.T) {
	cfg := testConfig()
	cfg.AI.Plugin = "bard"
	_, _, err := initModel(context.Background(), cfg)
	assert.EqualError(t, err, `unknown AI plugin "bard"`)
}

func TestAppClose_Nil(t *testing.T) {
	var app *App
	assert.NoError(t, app.Close())
	assert.NoError(t, (&App{}).Close())
}
