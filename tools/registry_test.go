package tools_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/mcpchat/tools"
)

func echo(ctx context.Context, args map[string]any) (string, error) {
	return "ok", nil
}

func TestNewRegistry(t *testing.T) {
	reg := tools.NewRegistry()
	assert.NotNil(t, reg)
	assert.Empty(t, reg.List())
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_Register(t *testing.T) {
	reg := tools.NewRegistry()

	require.NoError(t, reg.Register(tools.Capability{Name: "b_tool", Description: "B", Invoke: echo}))
	require.NoError(t, reg.Register(tools.Capability{Name: " a_tool ", Description: "A", Invoke: echo}))

	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b_tool", list[0].Name)
	assert.Equal(t, "a_tool", list[1].Name)

	_, ok := reg.Get("a_tool")
	assert.True(t, ok)
}

func TestRegistry_RegisterRejects(t *testing.T) {
	reg := tools.NewRegistry()
	require.NoError(t, reg.Register(tools.Capability{Name: "dup", Invoke: echo}))

	assert.ErrorContains(t, reg.Register(tools.Capability{Name: "dup", Invoke: echo}), "already registered")
	assert.ErrorContains(t, reg.Register(tools.Capability{Name: "  ", Invoke: echo}), "name is required")
	assert.ErrorContains(t, reg.Register(tools.Capability{Name: "noop"}), "no invoker")
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_Execute(t *testing.T) {
	reg := tools.NewRegistry()
	require.NoError(t, reg.Register(tools.Capability{
		Name: "greet",
		Invoke: func(ctx context.Context, args map[string]any) (string, error) {
			return "hello " + args["name"].(string), nil
		},
	}))

	out, err := reg.Execute(context.Background(), "greet", map[string]any{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "hello Ada", out)

	_, err = reg.Execute(context.Background(), "missing", nil)
	assert.ErrorContains(t, err, "tool not found: missing")
}
