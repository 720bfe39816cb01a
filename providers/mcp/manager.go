package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/va6996/mcpchat/log"
	"github.com/va6996/mcpchat/tools"
)

// ConnectTimeout bounds the launch and handshake of a single provider.
const ConnectTimeout = 30 * time.Second

// Manager owns the connections to all tool providers
type Manager struct {
	connections []*Connection
}

// ConnectFunc opens one provider connection
type ConnectFunc func(ctx context.Context, spec ServerSpec) (*Connection, error)

// NewManager launches every spec in order. On the first failure the
// providers already started are shut down and the error names the failing
// provider.
func NewManager(ctx context.Context, specs []ServerSpec) (*Manager, error) {
	return newManager(ctx, specs, Connect)
}

func newManager(ctx context.Context, specs []ServerSpec, connect ConnectFunc) (*Manager, error) {
	m := &Manager{}
	for _, spec := range specs {
		connectCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
		conn, err := connect(connectCtx, spec)
		cancel()
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("failed to connect to %s server: %w", spec.Name, err)
		}
		m.connections = append(m.connections, conn)
	}
	return m, nil
}

// Connections returns the open connections
func (m *Manager) Connections() []*Connection {
	return m.connections
}

// RegisterTools lists the tools of every provider and registers them.
// It returns the number of capabilities registered.
func (m *Manager) RegisterTools(ctx context.Context, registry *tools.Registry) (int, error) {
	count := 0
	for _, conn := range m.connections {
		caps, err := conn.Capabilities(ctx)
		if err != nil {
			return count, err
		}
		for _, c := range caps {
			if err := registry.Register(c); err != nil {
				return count, fmt.Errorf("%s: %w", conn.Name(), err)
			}
			count++
		}
		log.Infof(ctx, "Registered %d tools from %s", len(caps), conn.Name())
	}
	return count, nil
}

// Close shuts down every provider, returning the joined errors.
func (m *Manager) Close() error {
	var errs []error
	for i := len(m.connections) - 1; i >= 0; i-- {
		if err := m.connections[i].Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.connections[i].Name(), err))
		}
	}
	m.connections = nil
	return errors.Join(errs...)
}
