// Package mcp connects to tool providers running as MCP servers in
// subprocesses and exposes their tools as capabilities.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	logcontext "github.com/va6996/mcpchat/context"
	"github.com/va6996/mcpchat/log"
	"github.com/va6996/mcpchat/tools"
)

const (
	clientName    = "mcpchat"
	clientVersion = "1.0.0"

	// stopGrace is how long a provider gets to exit after its stdin closes.
	stopGrace = 2 * time.Second
)

// ServerSpec describes how to launch one tool provider.
type ServerSpec struct {
	Name    string
	Command string
	Args    []string
	// Env is the complete environment of the subprocess.
	Env []string
}

// Connection is an initialised MCP session with one provider
type Connection struct {
	name   string
	client *client.Client
	server mcp.Implementation

	cmd       *exec.Cmd
	stdout    io.Closer
	stderr    io.WriteCloser
	exited    chan struct{}
	closeOnce sync.Once
}

// Connect launches the provider described by spec and performs the MCP
// handshake. The subprocess gets exactly spec.Env as its environment.
func Connect(ctx context.Context, spec ServerSpec) (*Connection, error) {
	if spec.Command == "" {
		return nil, fmt.Errorf("%s: command is required", spec.Name)
	}

	cmd := exec.Command(spec.Command, spec.Args...)
	cmd.Env = spec.Env
	if cmd.Env == nil {
		// A nil Env would inherit the parent environment.
		cmd.Env = []string{}
	}

	stderr := log.Writer(logrus.DebugLevel)
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		stderr.Close()
		return nil, fmt.Errorf("%s: failed to open stdin: %w", spec.Name, err)
	}
	// A plain pipe rather than StdoutPipe: Wait must not close the read end
	// while the client is still draining it.
	stdout, stdoutW, err := os.Pipe()
	if err != nil {
		stderr.Close()
		return nil, fmt.Errorf("%s: failed to open stdout: %w", spec.Name, err)
	}
	cmd.Stdout = stdoutW

	if err := cmd.Start(); err != nil {
		stdout.Close()
		stdoutW.Close()
		stderr.Close()
		return nil, fmt.Errorf("%s: failed to start %s: %w", spec.Name, spec.Command, err)
	}
	stdoutW.Close()
	log.Debugf(ctx, "Started provider %s (pid %d)", spec.Name, cmd.Process.Pid)

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	conn, err := newConnection(ctx, spec.Name, stdout, stdin)
	if err != nil {
		stdin.Close()
		stopProcess(cmd, exited)
		stdout.Close()
		stderr.Close()
		return nil, err
	}
	conn.cmd = cmd
	conn.stdout = stdout
	conn.stderr = stderr
	conn.exited = exited
	return conn, nil
}

// newConnection runs the MCP handshake over an established byte stream.
func newConnection(ctx context.Context, name string, in io.Reader, out io.WriteCloser) (*Connection, error) {
	t := transport.NewIO(in, out, io.NopCloser(strings.NewReader("")))
	c := client.NewClient(t)

	// The transport outlives the handshake context.
	if err := c.Start(context.WithoutCancel(ctx)); err != nil {
		return nil, fmt.Errorf("%s: failed to start transport: %w", name, err)
	}

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: clientName, Version: clientVersion}

	res, err := c.Initialize(ctx, req)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("%s: initialize failed: %w", name, err)
	}
	log.Infof(ctx, "Connected to %s (server %s %s)", name, res.ServerInfo.Name, res.ServerInfo.Version)

	return &Connection{name: name, client: c, server: res.ServerInfo}, nil
}

// Name returns the provider name from the spec
func (c *Connection) Name() string {
	return c.name
}

// Capabilities lists the provider's tools as invocable capabilities.
func (c *Connection) Capabilities(ctx context.Context) ([]tools.Capability, error) {
	res, err := c.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("%s: list tools failed: %w", c.name, err)
	}

	out := make([]tools.Capability, 0, len(res.Tools))
	for _, t := range res.Tools {
		out = append(out, tools.Capability{
			Name:        t.Name,
			Description: t.Description,
			Params:      tools.ParamsFromSchema(t.InputSchema.Properties, t.InputSchema.Required),
			Invoke:      c.invoker(t.Name),
		})
	}
	return out, nil
}

func (c *Connection) invoker(tool string) tools.Invoker {
	return func(ctx context.Context, args map[string]any) (string, error) {
		ctx = logcontext.WithProvider(ctx, c.name)

		if c.hasExited() {
			return "", c.notRunning(tool)
		}

		// A provider that dies mid-call never answers; abandon the call.
		callCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if c.exited != nil {
			go func() {
				select {
				case <-c.exited:
					cancel()
				case <-callCtx.Done():
				}
			}()
		}

		req := mcp.CallToolRequest{}
		req.Params.Name = tool
		req.Params.Arguments = args

		log.Debugf(ctx, "Calling %s args=%v", tool, args)
		res, err := c.client.CallTool(callCtx, req)
		if err != nil {
			if ctx.Err() == nil && c.hasExited() {
				log.Errorf(ctx, "Provider %s exited during %s", c.name, tool)
				return "", c.notRunning(tool)
			}
			return "", fmt.Errorf("%s: call failed: %w", tool, err)
		}

		text := joinText(res.Content)
		if res.IsError {
			log.Warnf(ctx, "%s reported an error: %s", tool, text)
		}
		return text, nil
	}
}

func (c *Connection) hasExited() bool {
	if c.exited == nil {
		return false
	}
	select {
	case <-c.exited:
		return true
	default:
		return false
	}
}

func (c *Connection) notRunning(tool string) error {
	return fmt.Errorf("%s: provider %s is not running", tool, c.name)
}

// joinText concatenates the text parts of a tool result.
func joinText(content []mcp.Content) string {
	var parts []string
	for _, part := range content {
		switch p := part.(type) {
		case mcp.TextContent:
			parts = append(parts, p.Text)
		case *mcp.TextContent:
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Close ends the session and terminates the subprocess. It is safe to call
// more than once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.client.Close()
		if c.cmd != nil {
			stopProcess(c.cmd, c.exited)
		}
		if c.stdout != nil {
			c.stdout.Close()
		}
		if c.stderr != nil {
			c.stderr.Close()
		}
		if errors.Is(err, io.ErrClosedPipe) {
			err = nil
		}
	})
	return err
}

// stopProcess waits for the process to exit after its stdin closed and kills
// it when the grace period runs out.
func stopProcess(cmd *exec.Cmd, exited <-chan struct{}) {
	select {
	case <-exited:
		return
	case <-time.After(stopGrace):
	}
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	<-exited
}
