package model

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

type Rank string

const (
	Rank6  Rank = "6"
	Rank7  Rank = "7"
	Rank8  Rank = "8"
	Rank9  Rank = "9"
	Rank10 Rank = "10"
	RankJ  Rank = "J"
	RankQ  Rank = "Q"
	RankK  Rank = "K"
	RankA  Rank = "A"
)

var Ranks = []Rank{Rank6, Rank7, Rank8, Rank9, Rank10, RankJ, RankQ, RankK, RankA}

// RankValues orders ranks for beat comparisons only; card identity is the ID.
var RankValues = map[Rank]int{
	Rank6: 6, Rank7: 7, Rank8: 8, Rank9: 9, Rank10: 10,
	RankJ: 11, RankQ: 12, RankK: 13, RankA: 14,
}

type Card struct {
	ID   int  `json:"id"`
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Pair is one contested slot on the table. Defense is nil while uncovered.
type Pair struct {
	Attack  Card  `json:"attack"`
	Defense *Card `json:"defense"`
}

type Phase int

const (
	PhaseAttacking Phase = iota
	PhaseDefending
	PhaseThrowingIn
	PhaseGameOver
)

var phaseNames = [...]string{"ATTACKING", "DEFENDING", "THROWING_IN", "GAME_OVER"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "UNKNOWN"
	}
	return phaseNames[p]
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

const (
	HandSize      = 6
	MaxTablePairs = 6

	// WinnerDraw marks a hand where both players emptied out together.
	WinnerDraw = -1
)

// Game is the authoritative state of one hand. Winner stays nil while the
// hand is in play; once decided it is 0, 1 or WinnerDraw.
type Game struct {
	Deck          []Card
	TrumpCard     Card
	TrumpSuit     Suit
	Hands         [2][]Card
	Table         []Pair
	Phase         Phase
	Attacker      int
	Defender      int
	DefenderTakes bool
	Winner        *int

	// ResultRecorded guards the one-shot history insert after game over.
	ResultRecorded bool
}

// PlayerSlot binds one seat of a room to its current connection. The token
// is the reconnection credential; it is reissued whenever a new occupant
// claims the seat.
type PlayerSlot struct {
	Index       int
	Token       string
	Conn        *websocket.Conn
	Connected   bool
	RemoveTimer *time.Timer
}

// Room serializes all of its mutation through Mutex: joins, moves and timer
// callbacks for the same room never interleave.
type Room struct {
	ID    string
	Slots []*PlayerSlot
	Game  *Game
	Mutex sync.Mutex
}

// --- wire types ---

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Action struct {
	Type            string `json:"type"`
	RoomID          string `json:"roomId"`
	Token           string `json:"token,omitempty"`
	CardID          int    `json:"cardId"`
	TargetPairIndex *int   `json:"targetPairIndex,omitempty"`
}

type JoinResult struct {
	RoomID      string `json:"roomId"`
	Token       string `json:"token"`
	PlayerIndex int    `json:"playerIndex"`
	Reconnected bool   `json:"reconnected,omitempty"`
}

// GameView is one player's projection of the game: own hand in full, the
// opponent only as a count.
type GameView struct {
	Hand              []Card `json:"hand"`
	OpponentCardCount int    `json:"opponentCardCount"`
	Table             []Pair `json:"table"`
	TrumpCard         *Card  `json:"trumpCard"`
	TrumpSuit         Suit   `json:"trumpSuit"`
	DeckCount         int    `json:"deckCount"`
	Phase             Phase  `json:"phase"`
	Attacker          int    `json:"attacker"`
	Defender          int    `json:"defender"`
	IsAttacker        bool   `json:"isAttacker"`
	IsDefender        bool   `json:"isDefender"`
	DefenderTakes     bool   `json:"defenderTakes"`
	PlayableCardIDs   []int  `json:"playableCardIds"`
	Winner            *int   `json:"winner"`
	PlayerIndex       int    `json:"playerIndex"`
}

type RoomStats struct {
	Games int    `json:"games"`
	Wins  [2]int `json:"wins"`
	Draws int    `json:"draws"`
}
