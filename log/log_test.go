package log

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	logcontext "github.com/va6996/mcpchat/context"
)

func TestFormatterIncludesTurnAndProvider(t *testing.T) {
	var buf bytes.Buffer
	Init("debug")
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	ctx := logcontext.WithTurnID(context.Background(), "abc")
	ctx = logcontext.WithProvider(ctx, "news")
	Infof(ctx, "hello %s", "world")

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "[turn:abc]")
	assert.Contains(t, out, "[provider:news]")
	assert.Contains(t, out, "log_test.go")
}

func TestInitLevels(t *testing.T) {
	Init("error")
	assert.Equal(t, logrus.ErrorLevel, Logger.GetLevel())

	Init("nonsense")
	assert.Equal(t, logrus.WarnLevel, Logger.GetLevel())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init("warn")
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	ctx := context.Background()
	Debugf(ctx, "debug %d", 1)
	Infof(ctx, "info %d", 2)
	Warnf(ctx, "warn %d", 3)
	Errorf(ctx, "error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[WARNING]")
	assert.Contains(t, out, "warn 3")
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "error 4")
}
