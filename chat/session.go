// Package chat runs the interactive question and answer loop.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/va6996/mcpchat/agents"
	"github.com/va6996/mcpchat/console"
	logcontext "github.com/va6996/mcpchat/context"
	"github.com/va6996/mcpchat/log"
)

var exitWords = map[string]bool{"quit": true, "exit": true, "q": true}

// IsExit reports whether line asks to end the session.
func IsExit(line string) bool {
	return exitWords[strings.ToLower(strings.TrimSpace(line))]
}

// Session is one interactive conversation. Turns are handled one at a time.
type Session struct {
	responder agents.Responder
	console   *console.Console
	in        io.Reader
	state     *stateMachine
}

// NewSession creates a session reading user lines from in.
func NewSession(responder agents.Responder, c *console.Console, in io.Reader) *Session {
	return &Session{
		responder: responder,
		console:   c,
		in:        in,
		state:     newStateMachine(),
	}
}

// State returns the current session state
func (s *Session) State() State {
	return s.state.State()
}

// Run serves turns until the user exits, input ends or ctx is cancelled.
// None of those is an error.
func (s *Session) Run(ctx context.Context) error {
	if err := s.state.Transition(StateReady); err != nil {
		return err
	}
	if err := s.state.Transition(StateAwaitingInput); err != nil {
		return err
	}

	lines := readLines(s.in)
	for {
		s.console.Prompt()

		var line string
		select {
		case <-ctx.Done():
			return s.finish(true)
		case l, ok := <-lines:
			if !ok {
				return s.finish(true)
			}
			line = strings.TrimSpace(l)
		}

		if line == "" {
			if err := s.state.Transition(StateAwaitingInput); err != nil {
				return err
			}
			continue
		}
		if IsExit(line) {
			return s.finish(false)
		}

		if err := s.state.Transition(StateProcessing); err != nil {
			return err
		}
		s.console.Thinking()

		answer, err := s.respond(ctx, line)
		if ctx.Err() != nil {
			return s.finish(true)
		}
		if err != nil {
			s.console.Error("An error occurred during chat: %v", err)
		} else {
			s.console.Answer(answer)
		}

		if err := s.state.Transition(StateAwaitingInput); err != nil {
			return err
		}
	}
}

// finish ends the session. An interrupted prompt or turn first moves to a
// fresh line.
func (s *Session) finish(interrupted bool) error {
	if interrupted {
		s.console.Newline()
	}
	s.console.Farewell()
	return s.state.Transition(StateDone)
}

type reply struct {
	answer string
	err    error
}

// respond runs one turn and abandons it if ctx is cancelled first.
func (s *Session) respond(ctx context.Context, line string) (string, error) {
	turnID := logcontext.NewTurnID()
	ctx = logcontext.WithTurnID(ctx, turnID)
	log.Infof(ctx, "User turn: %q", line)

	done := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- reply{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		answer, err := s.responder.Respond(ctx, line)
		done <- reply{answer: answer, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			log.Errorf(ctx, "Turn failed: %v", r.err)
		}
		return r.answer, r.err
	}
}

// readLines delivers lines from r until it ends. The channel is closed on
// end of input or a read error.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			log.Warnf(context.Background(), "Input closed: %v", err)
		}
	}()
	return lines
}
