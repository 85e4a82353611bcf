package game

import "durak/internal/model"

// CanBeat reports whether defense beats attack given the trump suit.
// Same suit wins on rank; trump beats any non-trump; everything else loses.
func CanBeat(attack, defense model.Card, trump model.Suit) bool {
	if defense.Suit == attack.Suit {
		return model.RankValues[defense.Rank] > model.RankValues[attack.Rank]
	}
	return defense.Suit == trump && attack.Suit != trump
}

// tableRanks collects every rank present on the table, defenses included.
func tableRanks(table []model.Pair) map[model.Rank]bool {
	ranks := make(map[model.Rank]bool)
	for _, pair := range table {
		ranks[pair.Attack.Rank] = true
		if pair.Defense != nil {
			ranks[pair.Defense.Rank] = true
		}
	}
	return ranks
}

// firstUncovered returns the index of the first pair without a defense, or -1.
func firstUncovered(table []model.Pair) int {
	for i := range table {
		if table[i].Defense == nil {
			return i
		}
	}
	return -1
}

// PlayableCards computes the ids the player may legally play right now.
// Read-only; every mutating operation validates against it.
func PlayableCards(g *model.Game, player int) []int {
	ids := make([]int, 0)
	hand := g.Hands[player]

	switch g.Phase {
	case model.PhaseAttacking:
		if player != g.Attacker {
			return ids
		}
		if len(g.Table) == 0 {
			// Opening attack: anything goes.
			for _, c := range hand {
				ids = append(ids, c.ID)
			}
			return ids
		}
		if firstUncovered(g.Table) != -1 {
			// Must wait for the defense to resolve.
			return ids
		}
		max := model.MaxTablePairs
		if n := len(g.Hands[g.Defender]); n < max {
			max = n
		}
		if len(g.Table) >= max {
			return ids
		}
		ranks := tableRanks(g.Table)
		for _, c := range hand {
			if ranks[c.Rank] {
				ids = append(ids, c.ID)
			}
		}

	case model.PhaseDefending:
		if player != g.Defender {
			return ids
		}
		idx := firstUncovered(g.Table)
		if idx == -1 {
			return ids
		}
		for _, c := range hand {
			if CanBeat(g.Table[idx].Attack, c, g.TrumpSuit) {
				ids = append(ids, c.ID)
			}
		}

	case model.PhaseThrowingIn:
		if player == g.Defender {
			return ids
		}
		if len(g.Table) >= model.MaxTablePairs {
			return ids
		}
		ranks := tableRanks(g.Table)
		for _, c := range hand {
			if ranks[c.Rank] {
				ids = append(ids, c.ID)
			}
		}
	}

	return ids
}
