package llm

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"

	"plearn/backend/internal/metrics"
)

// perMessageOverhead approximates the role and separator tokens the chat
// format adds to every message.
const perMessageOverhead = 4

// HistoryTrimmer drops the oldest conversation turns until the messages fit
// a token budget.
type HistoryTrimmer struct {
	codec  tokenizer.Codec
	budget int
}

// NewHistoryTrimmer uses the cl100k_base encoding. A budget <= 0 disables
// trimming.
func NewHistoryTrimmer(budget int) (*HistoryTrimmer, error) {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("could not load tokenizer: %w", err)
	}
	return &HistoryTrimmer{codec: codec, budget: budget}, nil
}

// Count returns the token count of text.
func (h *HistoryTrimmer) Count(text string) int {
	ids, _, err := h.codec.Encode(text)
	if err != nil {
		// Fall back to a rough estimate.
		return len(text) / 4
	}
	return len(ids)
}

// Trim keeps leading system messages and the final message unconditionally
// and drops turns from the front of the rest until the total fits.
func (h *HistoryTrimmer) Trim(msgs []Message) []Message {
	if h.budget <= 0 || len(msgs) == 0 {
		return msgs
	}

	head := 0
	for head < len(msgs)-1 && msgs[head].Role == RoleSystem {
		head++
	}

	costs := make([]int, len(msgs))
	total := 0
	for i, m := range msgs {
		costs[i] = h.Count(m.Content) + perMessageOverhead
		total += costs[i]
	}

	drop := head
	for total > h.budget && drop < len(msgs)-1 {
		total -= costs[drop]
		drop++
	}
	if drop == head {
		return msgs
	}
	metrics.HistoryMessagesTrimmed.Add(float64(drop - head))

	out := make([]Message, 0, len(msgs)-(drop-head))
	out = append(out, msgs[:head]...)
	return append(out, msgs[drop:]...)
}
