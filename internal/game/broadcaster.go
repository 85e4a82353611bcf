package game

import (
	"durak/internal/model"
)

// ViewFor projects the game as one player sees it: the own hand in full, the
// opponent only as a count. The trump card disappears from the view once the
// deck is empty and it has been dealt out.
func ViewFor(g *model.Game, player int) model.GameView {
	var trump *model.Card
	if len(g.Deck) > 0 {
		tc := g.TrumpCard
		trump = &tc
	}
	return model.GameView{
		Hand:              g.Hands[player],
		OpponentCardCount: len(g.Hands[1-player]),
		Table:             g.Table,
		TrumpCard:         trump,
		TrumpSuit:         g.TrumpSuit,
		DeckCount:         len(g.Deck),
		Phase:             g.Phase,
		Attacker:          g.Attacker,
		Defender:          g.Defender,
		IsAttacker:        player == g.Attacker,
		IsDefender:        player == g.Defender,
		DefenderTakes:     g.DefenderTakes,
		PlayableCardIDs:   PlayableCards(g, player),
		Winner:            g.Winner,
		PlayerIndex:       player,
	}
}

// BroadcastState pushes each player's projection to their live connection.
// Disconnected seats are skipped; they catch up with the full push on
// reconnect. Call with the room mutex held.
func (m *Manager) BroadcastState(r *model.Room) {
	if r.Game == nil {
		return
	}
	for _, s := range r.Slots {
		if s.Connected && s.Conn != nil {
			s.Conn.WriteJSON(model.Message{Type: "gameState", Payload: ViewFor(r.Game, s.Index)})
		}
	}
}

// BroadcastStats pushes the room's match history to every live connection.
func (m *Manager) BroadcastStats(r *model.Room) {
	if m.Store == nil {
		return
	}
	stats := m.Store.RoomStats(r.ID)
	for _, s := range r.Slots {
		if s.Connected && s.Conn != nil {
			s.Conn.WriteJSON(model.Message{Type: "stats", Payload: stats})
		}
	}
}
