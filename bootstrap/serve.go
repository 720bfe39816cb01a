package bootstrap

import (
	"fmt"

	"github.com/va6996/mcpchat/config"
	"github.com/va6996/mcpchat/log"
	"github.com/va6996/mcpchat/plugins/news"
	"github.com/va6996/mcpchat/plugins/weather"
	"github.com/va6996/mcpchat/server"
	"github.com/va6996/mcpchat/tools"
)

const serverVersion = "1.0.0"

// ProviderRegistry builds the registry served by the named provider.
func ProviderRegistry(name string, cfg *config.Config) (*tools.Registry, error) {
	var plugin tools.ToolPlugin
	switch name {
	case WeatherServer:
		plugin = weather.NewProvider(weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout))
	case NewsServer:
		plugin = news.NewProvider(news.NewClient(cfg.News.APIKey, cfg.News.BaseURL, cfg.News.Timeout))
	default:
		return nil, fmt.Errorf("unknown server %q (want %s or %s)", name, WeatherServer, NewsServer)
	}

	registry := tools.NewRegistry()
	if err := plugin.RegisterTools(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// Serve runs the named tool provider on stdio until stdin closes. The
// configuration is read from the environment only.
func Serve(name string) error {
	cfg, err := config.LoadProvider()
	if err != nil {
		return err
	}
	log.Init(cfg.Log.Level)

	registry, err := ProviderRegistry(name, cfg)
	if err != nil {
		return err
	}
	return server.New(name, serverVersion, registry).ServeStdio()
}
