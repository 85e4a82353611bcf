package game

import (
	"errors"

	"durak/internal/model"
)

// Validation errors. None of these leaves the game mutated.
var (
	ErrCardNotInHand   = errors.New("card not in hand")
	ErrCardNotPlayable = errors.New("card cannot be played now")
	ErrNotAttacker     = errors.New("only the attacker may do that")
	ErrNotDefender     = errors.New("only the defender may do that")
	ErrWrongPhase      = errors.New("not allowed in the current phase")
	ErrEmptyTable      = errors.New("no cards on the table")
	ErrUncoveredPairs  = errors.New("not every attack is beaten")
	ErrNoTargetPair    = errors.New("no attack to beat")
	ErrPairCovered     = errors.New("that attack is already beaten")
)

// NewGame deals a fresh hand from a shuffled deck. Pass firstAttacker -1 to
// let the lowest trump decide who opens.
func NewGame(firstAttacker int) *model.Game {
	return NewGameFromDeck(ShuffledDeck(), firstAttacker)
}

// NewGameFromDeck deals from the deck as given, which keeps tests
// deterministic. The bottom card fixes the trump; six cards go to each hand,
// alternating, starting with player 0.
func NewGameFromDeck(deck []model.Card, firstAttacker int) *model.Game {
	g := &model.Game{
		Deck:      deck,
		TrumpCard: deck[0],
		TrumpSuit: deck[0].Suit,
		Table:     make([]model.Pair, 0),
		Phase:     model.PhaseAttacking,
	}
	for i := 0; i < model.HandSize; i++ {
		for p := 0; p < 2; p++ {
			g.Hands[p] = append(g.Hands[p], g.Deck[len(g.Deck)-1])
			g.Deck = g.Deck[:len(g.Deck)-1]
		}
	}
	if firstAttacker != 0 && firstAttacker != 1 {
		firstAttacker = pickFirstAttacker(g.Hands, g.TrumpSuit)
	}
	g.Attacker = firstAttacker
	g.Defender = 1 - firstAttacker
	return g
}

// pickFirstAttacker finds the holder of the lowest trump; player 0 opens if
// neither hand has one.
func pickFirstAttacker(hands [2][]model.Card, trump model.Suit) int {
	lowest := -1
	player := 0
	for p := 0; p < 2; p++ {
		for _, c := range hands[p] {
			if c.Suit != trump {
				continue
			}
			if v := model.RankValues[c.Rank]; lowest == -1 || v < lowest {
				lowest = v
				player = p
			}
		}
	}
	return player
}

// PlayCard applies one card for the player: an attack, a defense of the
// targeted pair (first uncovered pair when targetPair is nil), or a throw-in.
// All-or-nothing; a returned error means nothing changed.
func PlayCard(g *model.Game, player int, cardID int, targetPair *int) error {
	idx := handIndex(g.Hands[player], cardID)
	if idx == -1 {
		return ErrCardNotInHand
	}
	if !containsID(PlayableCards(g, player), cardID) {
		return ErrCardNotPlayable
	}
	card := g.Hands[player][idx]

	switch g.Phase {
	case model.PhaseAttacking:
		g.Hands[player] = removeAt(g.Hands[player], idx)
		g.Table = append(g.Table, model.Pair{Attack: card})
		g.Phase = model.PhaseDefending
		return nil

	case model.PhaseDefending:
		pairIdx := firstUncovered(g.Table)
		if targetPair != nil {
			pairIdx = *targetPair
		}
		if pairIdx < 0 || pairIdx >= len(g.Table) {
			return ErrNoTargetPair
		}
		pair := &g.Table[pairIdx]
		if pair.Defense != nil {
			return ErrPairCovered
		}
		if !CanBeat(pair.Attack, card, g.TrumpSuit) {
			return ErrCardNotPlayable
		}
		g.Hands[player] = removeAt(g.Hands[player], idx)
		pair.Defense = &card
		if firstUncovered(g.Table) == -1 {
			// Everything beaten: attacker may pile on or declare the round won.
			g.Phase = model.PhaseAttacking
		}
		return nil

	case model.PhaseThrowingIn:
		g.Hands[player] = removeAt(g.Hands[player], idx)
		g.Table = append(g.Table, model.Pair{Attack: card})
		return nil
	}

	return ErrWrongPhase
}

// DeclareBeaten settles the round in the attacker's favor: the table is
// discarded for good, hands are replenished and roles swap.
func DeclareBeaten(g *model.Game, player int) error {
	if player != g.Attacker {
		return ErrNotAttacker
	}
	if g.Phase != model.PhaseAttacking {
		return ErrWrongPhase
	}
	if len(g.Table) == 0 {
		return ErrEmptyTable
	}
	if firstUncovered(g.Table) != -1 {
		return ErrUncoveredPairs
	}

	g.Table = make([]model.Pair, 0)
	drawCards(g)
	if checkGameOver(g) {
		return nil
	}
	g.Attacker, g.Defender = g.Defender, g.Attacker
	g.Phase = model.PhaseAttacking
	return nil
}

// DeclareTake is the defender conceding the round. It opens the throw-in
// window; the table is collected only on FinishThrowingIn.
func DeclareTake(g *model.Game, player int) error {
	if player != g.Defender {
		return ErrNotDefender
	}
	if g.Phase != model.PhaseDefending && g.Phase != model.PhaseThrowingIn {
		return ErrWrongPhase
	}
	g.DefenderTakes = true
	g.Phase = model.PhaseThrowingIn
	return nil
}

// FinishThrowingIn closes the throw-in window: the defender picks up every
// card on the table, hands are replenished and the roles stay as they are.
func FinishThrowingIn(g *model.Game, player int) error {
	if player != g.Attacker {
		return ErrNotAttacker
	}
	if g.Phase != model.PhaseThrowingIn {
		return ErrWrongPhase
	}

	hand := g.Hands[g.Defender]
	for _, pair := range g.Table {
		hand = append(hand, pair.Attack)
		if pair.Defense != nil {
			hand = append(hand, *pair.Defense)
		}
	}
	g.Hands[g.Defender] = hand
	g.Table = make([]model.Pair, 0)
	g.DefenderTakes = false

	drawCards(g)
	if checkGameOver(g) {
		return nil
	}
	g.Phase = model.PhaseAttacking
	return nil
}

// drawCards refills both hands up to six, attacker strictly first. When the
// deck runs short the defender comes up light; that asymmetry is part of the
// rules.
func drawCards(g *model.Game) {
	for _, p := range [2]int{g.Attacker, g.Defender} {
		for len(g.Hands[p]) < model.HandSize && len(g.Deck) > 0 {
			g.Hands[p] = append(g.Hands[p], g.Deck[len(g.Deck)-1])
			g.Deck = g.Deck[:len(g.Deck)-1]
		}
	}
}

// checkGameOver decides the hand once the deck is empty: the first player
// out of cards wins, both out together is a draw.
func checkGameOver(g *model.Game) bool {
	if len(g.Deck) > 0 {
		return false
	}
	empty0 := len(g.Hands[0]) == 0
	empty1 := len(g.Hands[1]) == 0

	var winner int
	switch {
	case empty0 && empty1:
		winner = model.WinnerDraw
	case empty0:
		winner = 0
	case empty1:
		winner = 1
	default:
		return false
	}
	g.Winner = &winner
	g.Phase = model.PhaseGameOver
	return true
}

func handIndex(hand []model.Card, cardID int) int {
	for i, c := range hand {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeAt(hand []model.Card, i int) []model.Card {
	return append(hand[:i:i], hand[i+1:]...)
}
