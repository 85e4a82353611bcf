package game

import (
	"testing"

	"durak/internal/model"
)

func TestCanBeat(t *testing.T) {
	trump := model.Clubs

	tests := []struct {
		name     string
		attack   model.Card
		defense  model.Card
		expected bool
	}{
		{
			name:     "same suit higher rank",
			attack:   card(model.Spades, model.Rank7),
			defense:  card(model.Spades, model.Rank8),
			expected: true,
		},
		{
			name:     "same suit lower rank",
			attack:   card(model.Spades, model.Rank8),
			defense:  card(model.Spades, model.Rank7),
			expected: false,
		},
		{
			name:     "different non-trump suit",
			attack:   card(model.Spades, model.Rank7),
			defense:  card(model.Hearts, model.RankA),
			expected: false,
		},
		{
			name:     "trump beats non-trump",
			attack:   card(model.Spades, model.RankA),
			defense:  card(model.Clubs, model.Rank6),
			expected: true,
		},
		{
			name:     "non-trump cannot beat trump",
			attack:   card(model.Clubs, model.Rank6),
			defense:  card(model.Spades, model.RankA),
			expected: false,
		},
		{
			name:     "higher trump beats lower trump",
			attack:   card(model.Clubs, model.Rank6),
			defense:  card(model.Clubs, model.Rank7),
			expected: true,
		},
		{
			name:     "lower trump cannot beat higher trump",
			attack:   card(model.Clubs, model.Rank7),
			defense:  card(model.Clubs, model.Rank6),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanBeat(tt.attack, tt.defense, trump); got != tt.expected {
				t.Errorf("CanBeat(%v, %v) = %v, want %v", tt.attack, tt.defense, got, tt.expected)
			}
		})
	}
}

func TestPlayableCardsOpeningAttack(t *testing.T) {
	g := newScenarioGame(t)

	ids := PlayableCards(g, g.Attacker)
	if len(ids) != model.HandSize {
		t.Fatalf("opening attack: %d playable cards, want %d", len(ids), model.HandSize)
	}
	if got := PlayableCards(g, g.Defender); len(got) != 0 {
		t.Fatalf("defender has %d playable cards before any attack, want 0", len(got))
	}
}

func TestPlayableCardsDefending(t *testing.T) {
	sevenSpades := card(model.Spades, model.Rank7)
	g := &model.Game{
		TrumpSuit: model.Clubs,
		Hands: [2][]model.Card{
			{card(model.Diamonds, model.Rank7)},
			{
				card(model.Spades, model.Rank8),
				card(model.Spades, model.Rank6),
				card(model.Hearts, model.Rank7),
				card(model.Clubs, model.RankJ),
				card(model.Diamonds, model.RankA),
			},
		},
		Table:    []model.Pair{{Attack: sevenSpades}},
		Phase:    model.PhaseDefending,
		Attacker: 0,
		Defender: 1,
	}

	want := []int{card(model.Spades, model.Rank8).ID, card(model.Clubs, model.RankJ).ID}
	got := PlayableCards(g, 1)
	if !sameIDs(got, want) {
		t.Fatalf("defender playable = %v, want %v", got, want)
	}
	if len(PlayableCards(g, 0)) != 0 {
		t.Fatal("attacker must have no playable cards while defending is pending")
	}
}

func TestPlayableCardsExtendAttack(t *testing.T) {
	covered := card(model.Spades, model.Rank8)
	g := &model.Game{
		TrumpSuit: model.Clubs,
		Hands: [2][]model.Card{
			{card(model.Diamonds, model.Rank7), card(model.Hearts, model.Rank9), card(model.Diamonds, model.Rank8)},
			{card(model.Hearts, model.RankK), card(model.Hearts, model.RankQ)},
		},
		Table: []model.Pair{
			{Attack: card(model.Spades, model.Rank7), Defense: &covered},
		},
		Phase:    model.PhaseAttacking,
		Attacker: 0,
		Defender: 1,
	}

	// Ranks on the table are 7 and 8 (the defense counts too).
	want := []int{card(model.Diamonds, model.Rank7).ID, card(model.Diamonds, model.Rank8).ID}
	if got := PlayableCards(g, 0); !sameIDs(got, want) {
		t.Fatalf("extend playable = %v, want %v", got, want)
	}
}

func TestPlayableCardsBlockedByUncoveredPair(t *testing.T) {
	g := &model.Game{
		TrumpSuit: model.Clubs,
		Hands: [2][]model.Card{
			{card(model.Diamonds, model.Rank7)},
			{card(model.Hearts, model.RankK)},
		},
		Table:    []model.Pair{{Attack: card(model.Spades, model.Rank7)}},
		Phase:    model.PhaseAttacking,
		Attacker: 0,
		Defender: 1,
	}
	if got := PlayableCards(g, 0); len(got) != 0 {
		t.Fatalf("attacks while a pair is uncovered = %v, want none", got)
	}
}

func TestPlayableCardsAttackCap(t *testing.T) {
	eight := card(model.Spades, model.Rank8)
	ten := card(model.Hearts, model.Rank10)
	g := &model.Game{
		TrumpSuit: model.Clubs,
		Hands: [2][]model.Card{
			{card(model.Diamonds, model.Rank7), card(model.Clubs, model.Rank9)},
			{card(model.Diamonds, model.RankA)},
		},
		Table: []model.Pair{
			{Attack: card(model.Spades, model.Rank7), Defense: &eight},
			{Attack: card(model.Hearts, model.Rank9), Defense: &ten},
		},
		Phase:    model.PhaseAttacking,
		Attacker: 0,
		Defender: 1,
	}
	// Defender holds one card: the table may never exceed one more pair than
	// the defender can answer, so no further attacks are legal.
	if got := PlayableCards(g, 0); len(got) != 0 {
		t.Fatalf("attacks beyond the defender's hand size = %v, want none", got)
	}
}

func TestPlayableCardsThrowingIn(t *testing.T) {
	g := &model.Game{
		TrumpSuit: model.Clubs,
		Hands: [2][]model.Card{
			{card(model.Diamonds, model.Rank7), card(model.Clubs, model.Rank9)},
			{card(model.Diamonds, model.RankA), card(model.Hearts, model.Rank7)},
		},
		Table:         []model.Pair{{Attack: card(model.Spades, model.Rank7)}},
		Phase:         model.PhaseThrowingIn,
		Attacker:      0,
		Defender:      1,
		DefenderTakes: true,
	}

	want := []int{card(model.Diamonds, model.Rank7).ID}
	if got := PlayableCards(g, 0); !sameIDs(got, want) {
		t.Fatalf("throw-in playable = %v, want %v", got, want)
	}
	if got := PlayableCards(g, 1); len(got) != 0 {
		t.Fatalf("defender playable during throw-in = %v, want none", got)
	}
}

func TestPlayableCardsThrowingInCap(t *testing.T) {
	seven := card(model.Diamonds, model.Rank7)
	g := &model.Game{
		TrumpSuit: model.Clubs,
		Hands:     [2][]model.Card{{seven}, {}},
		Phase:     model.PhaseThrowingIn,
		Attacker:  0,
		Defender:  1,
	}
	for _, s := range []model.Suit{model.Spades, model.Hearts} {
		for _, r := range []model.Rank{model.Rank7, model.Rank8, model.Rank9} {
			g.Table = append(g.Table, model.Pair{Attack: card(s, r)})
		}
	}
	if len(g.Table) != model.MaxTablePairs {
		t.Fatalf("setup: table has %d pairs", len(g.Table))
	}
	if got := PlayableCards(g, 0); len(got) != 0 {
		t.Fatalf("throw-in past six pairs = %v, want none", got)
	}
}

func sameIDs(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	set := make(map[int]bool, len(want))
	for _, id := range want {
		set[id] = true
	}
	for _, id := range got {
		if !set[id] {
			return false
		}
	}
	return true
}
