package gen

import (
	"math/rand"
	"regexp"
	"strings"
)

// FallbackReview is emitted when the model was trained on no usable text.
const FallbackReview = "Great product!"

// DefaultStateSize is the Markov window length k.
const DefaultStateSize = 2

// Word tokens are runs of word characters; each of . , ! ? ; is its own token.
var tokenPattern = regexp.MustCompile(`[\pL\pN_]+|[.,!?;]`)

// TextModel is an order-k Markov chain over review text. Successor lists
// keep duplicates: repetition is the only frequency signal. The model is
// read-only after training and safe to share across generator calls.
type TextModel struct {
	k      int
	chain  map[string][]string
	starts [][]string
}

// TrainText builds a TextModel of order k from a corpus of strings.
// Strings shorter than k tokens are skipped.
func TrainText(corpus []string, k int) *TextModel {
	if k <= 0 {
		k = DefaultStateSize
	}
	m := &TextModel{k: k, chain: make(map[string][]string)}
	for _, text := range corpus {
		words := tokenPattern.FindAllString(text, -1)
		if len(words) < k {
			continue
		}
		start := make([]string, k)
		copy(start, words[:k])
		m.starts = append(m.starts, start)

		for i := 0; i+k < len(words); i++ {
			key := stateKey(words[i : i+k])
			m.chain[key] = append(m.chain[key], words[i+k])
		}
	}
	return m
}

// Successors returns the successor list recorded for a window, duplicates
// included.
func (m *TextModel) Successors(window []string) []string {
	if len(window) != m.k {
		return nil
	}
	return m.chain[stateKey(window)]
}

// Trained reports whether the model has at least one start window.
func (m *TextModel) Trained() bool {
	return len(m.starts) > 0
}

// Generate produces up to maxTokens tokens of pseudo-random text. It stops
// early at a dead-end window or after a sentence terminator.
func (m *TextModel) Generate(rng *rand.Rand, maxTokens int) string {
	if len(m.starts) == 0 {
		return FallbackReview
	}

	state := m.starts[rng.Intn(len(m.starts))]
	result := make([]string, len(state))
	copy(result, state)

	for i := 0; i < maxTokens; i++ {
		next := m.chain[stateKey(result[len(result)-m.k:])]
		if len(next) == 0 {
			break
		}
		word := next[rng.Intn(len(next))]
		result = append(result, word)
		if word == "." || word == "!" || word == "?" {
			break
		}
	}

	text := strings.Join(result, " ")
	text = strings.ReplaceAll(text, " .", ".")
	text = strings.ReplaceAll(text, " ,", ",")
	return text
}

func stateKey(window []string) string {
	return strings.Join(window, " ")
}
