package news

import (
	"context"

	"github.com/va6996/mcpchat/log"
	"github.com/va6996/mcpchat/tools"
)

const ToolName = "get_news"

// Input is the argument set of get_news
type Input struct {
	Topic string `json:"topic"`
	Limit int    `json:"limit"`
}

// Provider exposes the news client as the get_news capability
type Provider struct {
	client *Client
}

var _ tools.ToolPlugin = (*Provider)(nil)

// NewProvider creates a news tool provider
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// RegisterTools registers get_news
func (p *Provider) RegisterTools(registry *tools.Registry) error {
	return registry.Register(tools.Capability{
		Name:        ToolName,
		Description: "Get latest news headlines for a topic",
		Params: []tools.Param{
			{Name: "topic", Type: "string", Description: "Topic to search for, e.g. AI", Required: true},
			{Name: "limit", Type: "integer", Description: "Number of articles to return", Default: DefaultLimit},
		},
		Invoke: func(ctx context.Context, args map[string]any) (string, error) {
			input := Input{Limit: DefaultLimit}
			if err := tools.DecodeArgs(args, &input); err != nil {
				return NewResult(input.Topic, nil, &Failure{Kind: KindInvalidInput, Err: err}).String(), nil
			}
			return p.GetNews(ctx, input.Topic, input.Limit).String(), nil
		},
	})
}

// GetNews searches recent articles. It never fails; failures are carried in
// the Result.
func (p *Provider) GetNews(ctx context.Context, topic string, limit int) Result {
	log.Debugf(ctx, "GetNews executing for topic=%q limit=%d", topic, limit)

	if p.client == nil {
		return NewResult(topic, nil, &Failure{Kind: KindMissingKey, Err: ErrMissingAPIKey})
	}

	articles, err := p.client.Search(ctx, topic, limit)
	res := NewResult(topic, articles, err)
	if res.Failure != nil {
		log.Errorf(ctx, "GetNews failed for %q (%s): %v", topic, res.Failure.Kind, res.Failure.Err)
	} else {
		log.Debugf(ctx, "GetNews completed. Found %d articles.", len(articles))
	}
	return res
}
