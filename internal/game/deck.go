package game

import (
	"math/rand"

	"durak/internal/model"
)

// NewDeck builds the 36-card deck in a fixed order, ids 0..35.
func NewDeck() []model.Card {
	deck := make([]model.Card, 0, 36)
	id := 0
	for _, s := range model.Suits {
		for _, r := range model.Ranks {
			deck = append(deck, model.Card{ID: id, Suit: s, Rank: r})
			id++
		}
	}
	return deck
}

// ShuffledDeck returns a fresh deck in uniformly random order. The bottom
// card (index 0) becomes the trump card; draws come off the top (the end of
// the slice), so the trump is the last card ever dealt.
func ShuffledDeck() []model.Card {
	deck := NewDeck()
	rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}
