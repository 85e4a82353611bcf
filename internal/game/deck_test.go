package game

import (
	"testing"

	"durak/internal/model"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 36 {
		t.Fatalf("deck size = %d, want 36", len(deck))
	}

	seenIDs := make(map[int]bool)
	perSuit := make(map[model.Suit]int)
	for _, c := range deck {
		if c.ID < 0 || c.ID > 35 {
			t.Fatalf("card id %d out of range", c.ID)
		}
		if seenIDs[c.ID] {
			t.Fatalf("duplicate card id %d", c.ID)
		}
		seenIDs[c.ID] = true
		perSuit[c.Suit]++
		if _, ok := model.RankValues[c.Rank]; !ok {
			t.Fatalf("card %d has unknown rank %q", c.ID, c.Rank)
		}
	}
	for _, s := range model.Suits {
		if perSuit[s] != 9 {
			t.Fatalf("suit %s has %d cards, want 9", s, perSuit[s])
		}
	}
}

func TestShuffledDeckKeepsAllCards(t *testing.T) {
	deck := ShuffledDeck()
	if len(deck) != 36 {
		t.Fatalf("deck size = %d, want 36", len(deck))
	}
	seen := make(map[int]bool)
	for _, c := range deck {
		if seen[c.ID] {
			t.Fatalf("duplicate card id %d after shuffle", c.ID)
		}
		seen[c.ID] = true
	}
}
