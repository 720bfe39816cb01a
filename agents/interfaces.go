package agents

import "context"

// Responder answers one user turn
type Responder interface {
	Respond(ctx context.Context, input string) (string, error)
}
