package agents

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory(2)
	for i := 1; i <= 3; i++ {
		h.Append(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	assert.Equal(t, 2, h.Len())
	msgs := h.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "q2", msgs[0].Text())
	assert.Equal(t, "a2", msgs[1].Text())
	assert.Equal(t, "q3", msgs[2].Text())
	assert.Equal(t, "a3", msgs[3].Text())
}

func TestHistory_Disabled(t *testing.T) {
	h := NewHistory(0)
	h.Append("q", "a")
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Messages())
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory(5)
	h.Append("q", "a")
	h.Reset()
	assert.Equal(t, 0, h.Len())
}
