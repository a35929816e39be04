package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryTrimmer(t *testing.T) {
	long := strings.Repeat("belajar matematika itu menyenangkan ", 40)

	t.Run("Fits unchanged", func(t *testing.T) {
		h, err := NewHistoryTrimmer(1000)
		require.NoError(t, err)
		msgs := []Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "halo"}}
		assert.Equal(t, msgs, h.Trim(msgs))
	})

	t.Run("Drops oldest turns first", func(t *testing.T) {
		h, err := NewHistoryTrimmer(h0Budget(t, long))
		require.NoError(t, err)
		msgs := []Message{
			{Role: RoleSystem, Content: "sys"},
			{Role: RoleUser, Content: long},
			{Role: RoleAssistant, Content: long},
			{Role: RoleUser, Content: "terakhir"},
		}

		out := h.Trim(msgs)

		require.Len(t, out, 3)
		assert.Equal(t, RoleSystem, out[0].Role)
		assert.Equal(t, RoleAssistant, out[1].Role)
		assert.Equal(t, "terakhir", out[2].Content)
	})

	t.Run("Keeps last message over budget", func(t *testing.T) {
		h, err := NewHistoryTrimmer(5)
		require.NoError(t, err)
		msgs := []Message{{Role: RoleUser, Content: long}, {Role: RoleUser, Content: long}}
		out := h.Trim(msgs)
		require.Len(t, out, 1)
		assert.Equal(t, long, out[0].Content)
	})

	t.Run("Disabled", func(t *testing.T) {
		h, err := NewHistoryTrimmer(0)
		require.NoError(t, err)
		msgs := []Message{{Role: RoleUser, Content: long}, {Role: RoleUser, Content: long}}
		assert.Len(t, h.Trim(msgs), 2)
	})

	t.Run("Count", func(t *testing.T) {
		h, err := NewHistoryTrimmer(10)
		require.NoError(t, err)
		assert.Positive(t, h.Count("halo dunia"))
		assert.Zero(t, h.Count(""))
	})
}

// h0Budget returns a budget that fits one long message plus a few short ones.
func h0Budget(t *testing.T, long string) int {
	t.Helper()
	h, err := NewHistoryTrimmer(1)
	require.NoError(t, err)
	return h.Count(long) + 3*perMessageOverhead + h.Count("sys") + h.Count("terakhir") + 2
}
