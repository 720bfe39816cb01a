package weather

import (
	"context"

	"github.com/va6996/mcpchat/log"
	"github.com/va6996/mcpchat/tools"
)

const ToolName = "get_weather"

// Input is the argument set of get_weather
type Input struct {
	City string `json:"city"`
}

// Provider exposes the weather client as the get_weather capability
type Provider struct {
	client *Client
}

// Ensure Provider satisfies ToolPlugin
var _ tools.ToolPlugin = (*Provider)(nil)

// NewProvider creates a weather tool provider
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// RegisterTools registers get_weather
func (p *Provider) RegisterTools(registry *tools.Registry) error {
	return registry.Register(tools.Capability{
		Name:        ToolName,
		Description: "Get current weather for a city",
		Params: []tools.Param{
			{Name: "city", Type: "string", Description: "City name, e.g. London", Required: true},
		},
		Invoke: func(ctx context.Context, args map[string]any) (string, error) {
			var input Input
			if err := tools.DecodeArgs(args, &input); err != nil {
				return NewResult(input.City, nil, &Failure{Kind: KindInvalidInput, Err: err}).String(), nil
			}
			return p.GetWeather(ctx, input.City).String(), nil
		},
	})
}

// GetWeather looks up the current weather. It never fails; failures are
// carried in the Result.
func (p *Provider) GetWeather(ctx context.Context, city string) Result {
	log.Debugf(ctx, "GetWeather executing for city=%q", city)

	if p.client == nil {
		return NewResult(city, nil, &Failure{Kind: KindMissingKey, Err: ErrMissingAPIKey})
	}

	report, err := p.client.Current(ctx, city)
	res := NewResult(city, report, err)
	if res.Failure != nil {
		log.Errorf(ctx, "GetWeather failed for %q (%s): %v", city, res.Failure.Kind, res.Failure.Err)
	} else {
		log.Debugf(ctx, "GetWeather completed for %s, %s", report.Place, report.Country)
	}
	return res
}
