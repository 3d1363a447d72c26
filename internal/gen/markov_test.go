package gen

import (
	"math/rand"
	"strings"
	"testing"
)

func TestGenerateUntrainedReturnsFallback(t *testing.T) {
	model := TrainText(nil, 2)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 10; i++ {
		if got := model.Generate(rng, 20); got != FallbackReview {
			t.Fatalf("Expected fallback %q, got %q", FallbackReview, got)
		}
	}
}

func TestTrainRecordsSuccessorsWithDuplicates(t *testing.T) {
	model := TrainText([]string{"a b c", "a b d"}, 2)

	succ := model.Successors([]string{"a", "b"})
	if len(succ) != 2 {
		t.Fatalf("Expected 2 successors for (a, b), got %d: %v", len(succ), succ)
	}
	found := map[string]bool{}
	for _, s := range succ {
		found[s] = true
	}
	if !found["c"] || !found["d"] {
		t.Errorf("Expected successors c and d, got %v", succ)
	}
}

func TestGenerateChoosesOnlyRecordedSuccessors(t *testing.T) {
	model := TrainText([]string{"a b c", "a b d"}, 2)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		got := model.Generate(rng, 20)
		if got != "a b c" && got != "a b d" {
			t.Fatalf("Generated unexpected text %q", got)
		}
	}
}

func TestTrainSkipsShortStrings(t *testing.T) {
	model := TrainText([]string{"single"}, 2)
	if model.Trained() {
		t.Error("Expected model trained only on a 1-token string to be untrained")
	}
}

func TestGenerateStopsAtSentenceTerminator(t *testing.T) {
	model := TrainText([]string{"good product . really nice"}, 2)
	rng := rand.New(rand.NewSource(3))

	// The only path from the start window ends at the period, which also
	// checks that punctuation attaches to the preceding word.
	if got := model.Generate(rng, 20); got != "good product." {
		t.Errorf("Expected %q, got %q", "good product.", got)
	}
}

func TestGenerateRespectsMaxTokens(t *testing.T) {
	model := TrainText([]string{"a a a a a a a a"}, 2)
	rng := rand.New(rand.NewSource(5))

	got := model.Generate(rng, 3)
	if n := len(strings.Fields(got)); n != 5 {
		t.Errorf("Expected 2 start tokens + 3 generated, got %d (%q)", n, got)
	}
}

func TestGenerateCollapsesCommaSpacing(t *testing.T) {
	model := TrainText([]string{"nice , fast"}, 2)
	rng := rand.New(rand.NewSource(2))

	if got := model.Generate(rng, 20); got != "nice, fast" {
		t.Errorf("Expected %q, got %q", "nice, fast", got)
	}
}

func TestTokenizerSplitsWordsAndPunctuation(t *testing.T) {
	got := tokenPattern.FindAllString("Chegou rápido, recomendo!", -1)
	want := []string{"Chegou", "rápido", ",", "recomendo", "!"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Token %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
