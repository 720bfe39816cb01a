package chat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/va6996/mcpchat/console"
	logcontext "github.com/va6996/mcpchat/context"
)

type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) Respond(ctx context.Context, input string) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func runSession(t *testing.T, responder *MockResponder, input string) (string, *Session) {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(responder, console.New(&out, false), strings.NewReader(input))
	require.NoError(t, s.Run(context.Background()))
	return out.String(), s
}

func TestSession_EmptyLinesNeverCallModel(t *testing.T) {
	responder := new(MockResponder)

	out, s := runSession(t, responder, "\n   \n\t\nquit\n")

	responder.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything)
	assert.Equal(t, 4, strings.Count(out, "mcp>"))
	assert.Contains(t, out, "Goodbye!")
	assert.Equal(t, StateDone, s.State())
}

func TestSession_ExitWords(t *testing.T) {
	for _, word := range []string{"quit", "exit", "q", "QUIT", "Exit", "Q", "  qUiT  "} {
		t.Run(word, func(t *testing.T) {
			responder := new(MockResponder)

			out, s := runSession(t, responder, word+"\nweather in Paris?\n")

			responder.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything)
			assert.Contains(t, out, "Goodbye!")
			assert.NotContains(t, out, "Agent:")
			assert.Equal(t, StateDone, s.State())
		})
	}
}

func TestSession_FailedTurnDoesNotEndSession(t *testing.T) {
	responder := new(MockResponder)
	responder.On("Respond", mock.Anything, "first").Return("", errors.New("model unavailable")).Once()
	responder.On("Respond", mock.Anything, "second").Return("It is sunny.", nil).Once()

	out, _ := runSession(t, responder, "first\nsecond\nexit\n")

	responder.AssertExpectations(t)
	assert.Contains(t, out, "An error occurred during chat: model unavailable")
	assert.Contains(t, out, "🤖 Agent: It is sunny.")
	assert.Less(t, strings.Index(out, "An error occurred"), strings.Index(out, "It is sunny."))
}

func TestSession_PanickingTurnIsRecovered(t *testing.T) {
	responder := new(MockResponder)
	responder.On("Respond", mock.Anything, "boom").Run(func(args mock.Arguments) {
		panic("nil map")
	}).Once()
	responder.On("Respond", mock.Anything, "again").Return("fine", nil).Once()

	out, _ := runSession(t, responder, "boom\nagain\nq\n")

	assert.Contains(t, out, "An error occurred during chat: panic: nil map")
	assert.Contains(t, out, "Agent: fine")
}

func TestSession_TurnIDs(t *testing.T) {
	var ids []string
	responder := new(MockResponder)
	responder.On("Respond", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ids = append(ids, logcontext.TurnIDFromContext(args.Get(0).(context.Context)))
	}).Return("ok", nil)

	runSession(t, responder, "one\ntwo\n")

	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestSession_EndOfInputExits(t *testing.T) {
	responder := new(MockResponder)
	responder.On("Respond", mock.Anything, "hello").Return("hi", nil).Once()

	out, s := runSession(t, responder, "hello")

	responder.AssertExpectations(t)
	assert.Contains(t, out, "Agent: hi")
	assert.Contains(t, out, "Goodbye!")
	assert.Equal(t, StateDone, s.State())
}

func TestSession_InterruptWhileReading(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()

	var out bytes.Buffer
	s := NewSession(new(MockResponder), console.New(&out, false), in)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	require.NoError(t, s.Run(ctx))
	assert.Contains(t, out.String(), "Goodbye!")
	assert.Equal(t, StateDone, s.State())
}

func TestSession_InterruptWhileThinking(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	responder := new(MockResponder)
	responder.On("Respond", mock.Anything, "slow question").Run(func(args mock.Arguments) {
		cancel()
		<-args.Get(0).(context.Context).Done()
	}).Return("late answer", nil)

	in, w := io.Pipe()
	go w.Write([]byte("slow question\n"))
	defer w.Close()

	var out bytes.Buffer
	s := NewSession(responder, console.New(&out, false), in)

	require.NoError(t, s.Run(ctx))
	assert.Contains(t, out.String(), "Goodbye!")
	assert.NotContains(t, out.String(), "late answer")
	assert.NotContains(t, out.String(), "An error occurred")
	assert.Equal(t, StateDone, s.State())
}

func TestSession_RunTwice(t *testing.T) {
	s := NewSession(new(MockResponder), console.New(io.Discard, false), strings.NewReader("q\n"))
	require.NoError(t, s.Run(context.Background()))

	var invalid *InvalidTransitionError
	require.ErrorAs(t, s.Run(context.Background()), &invalid)
}

func TestIsExit(t *testing.T) {
	assert.True(t, IsExit(" Q "))
	assert.False(t, IsExit("quit now"))
	assert.False(t, IsExit(""))
}
