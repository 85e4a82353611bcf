package game

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"durak/internal/database"
	"durak/internal/model"
)

// Lookup and capacity errors, reported only to the initiating connection.
var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrTokenNotFound = errors.New("unknown reconnection token")
	ErrNoGame        = errors.New("game has not started")
	ErrNotInRoom     = errors.New("player is not in this room")
	ErrNeedTwo       = errors.New("need two players")
)

// DefaultGrace is how long a disconnected seat in a not-yet-started room is
// held before it is reclaimed.
const DefaultGrace = 30 * time.Second

// Manager owns the room registry. The registry lock only guards inserts,
// deletes and lookups; everything inside a room goes through the room mutex.
type Manager struct {
	Rooms     map[string]*model.Room
	RoomsLock sync.Mutex
	Store     *database.Store
	Grace     time.Duration
}

func NewManager(store *database.Store, grace time.Duration) *Manager {
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &Manager{
		Rooms: make(map[string]*model.Room),
		Store: store,
		Grace: grace,
	}
}

// CreateRoom allocates an empty room under a short unique id.
func (m *Manager) CreateRoom() *model.Room {
	m.RoomsLock.Lock()
	defer m.RoomsLock.Unlock()

	id := uuid.NewString()[:8]
	for m.Rooms[id] != nil {
		id = uuid.NewString()[:8]
	}
	room := &model.Room{ID: id, Slots: make([]*model.PlayerSlot, 0, 2)}
	m.Rooms[id] = room
	log.Printf("room %s created", id)
	return room
}

func (m *Manager) GetRoom(id string) *model.Room {
	m.RoomsLock.Lock()
	defer m.RoomsLock.Unlock()
	return m.Rooms[id]
}

// DeleteRoom tears a room down immediately, cancelling any pending slot
// timers.
func (m *Manager) DeleteRoom(id string) {
	m.RoomsLock.Lock()
	room := m.Rooms[id]
	delete(m.Rooms, id)
	m.RoomsLock.Unlock()

	if room == nil {
		return
	}
	room.Mutex.Lock()
	for _, s := range room.Slots {
		stopRemoveTimer(s)
	}
	room.Mutex.Unlock()
	log.Printf("room %s deleted", id)
}

// Join seats a connection in the room. A disconnected seat in a full room is
// handed over to the newcomer (fresh token, same index); two connected seats
// mean the room is full. The game is dealt the moment the second seat fills.
func (m *Manager) Join(roomID string, conn *websocket.Conn) (*model.Room, *model.PlayerSlot, error) {
	room := m.GetRoom(roomID)
	if room == nil {
		return nil, nil, ErrRoomNotFound
	}

	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	var slot *model.PlayerSlot
	if len(room.Slots) < 2 {
		slot = &model.PlayerSlot{Index: len(room.Slots)}
		room.Slots = append(room.Slots, slot)
	} else {
		for _, s := range room.Slots {
			if !s.Connected {
				slot = s
				break
			}
		}
		if slot == nil {
			return nil, nil, ErrRoomFull
		}
		stopRemoveTimer(slot)
	}

	slot.Token = uuid.NewString()
	slot.Conn = conn
	slot.Connected = true

	if len(room.Slots) == 2 && room.Game == nil {
		room.Game = NewGame(-1)
		log.Printf("room %s: game started, attacker %d", room.ID, room.Game.Attacker)
	}
	log.Printf("room %s: seat %d joined", room.ID, slot.Index)
	return room, slot, nil
}

// Reconnect rebinds the seat owning the token to a new connection and cancels
// its removal timer. Unknown room or token is a plain lookup error so the
// caller can fall back to Join.
func (m *Manager) Reconnect(roomID, token string, conn *websocket.Conn) (*model.Room, *model.PlayerSlot, error) {
	room := m.GetRoom(roomID)
	if room == nil {
		return nil, nil, ErrRoomNotFound
	}

	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	for _, s := range room.Slots {
		if s.Token == token {
			stopRemoveTimer(s)
			s.Conn = conn
			s.Connected = true
			log.Printf("room %s: seat %d reconnected", room.ID, s.Index)
			return room, s, nil
		}
	}
	return nil, nil, ErrTokenNotFound
}

// Disconnect marks the seat owning the connection as gone and arms its grace
// timer. The room mutex makes the timer callback and a racing Reconnect
// mutually exclusive.
func (m *Manager) Disconnect(conn *websocket.Conn) {
	room, slot := m.findByConn(conn)
	if room == nil {
		return
	}

	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	if slot.Conn != conn {
		// A reconnect already claimed the seat with a newer connection.
		return
	}
	slot.Conn = nil
	slot.Connected = false
	stopRemoveTimer(slot)
	token := slot.Token
	slot.RemoveTimer = time.AfterFunc(m.Grace, func() { m.reapSlot(room, token) })
	log.Printf("room %s: seat %d disconnected", room.ID, slot.Index)
}

// findByConn locates the seat bound to a connection. The registry lock is
// released before any room mutex is taken to keep lock order one-way.
func (m *Manager) findByConn(conn *websocket.Conn) (*model.Room, *model.PlayerSlot) {
	m.RoomsLock.Lock()
	rooms := make([]*model.Room, 0, len(m.Rooms))
	for _, r := range m.Rooms {
		rooms = append(rooms, r)
	}
	m.RoomsLock.Unlock()

	for _, room := range rooms {
		room.Mutex.Lock()
		for _, s := range room.Slots {
			if s.Conn == conn {
				room.Mutex.Unlock()
				return room, s
			}
		}
		room.Mutex.Unlock()
	}
	return nil, nil
}

// reapSlot runs when a grace timer fires. Before the first deal the seat is
// removed for good and an emptied room is reclaimed; once a game is underway
// the seat just stays parked with its token valid.
func (m *Manager) reapSlot(room *model.Room, token string) {
	room.Mutex.Lock()

	var slot *model.PlayerSlot
	for _, s := range room.Slots {
		if s.Token == token {
			slot = s
			break
		}
	}
	if slot == nil || slot.Connected {
		room.Mutex.Unlock()
		return
	}
	if room.Game != nil {
		log.Printf("room %s: seat %d stays reserved for reconnection", room.ID, slot.Index)
		room.Mutex.Unlock()
		return
	}

	kept := make([]*model.PlayerSlot, 0, len(room.Slots))
	for _, s := range room.Slots {
		if s != slot {
			kept = append(kept, s)
		}
	}
	// Indices are only stable once a game exists; before that seats compact.
	for i, s := range kept {
		s.Index = i
	}
	room.Slots = kept
	empty := len(room.Slots) == 0
	room.Mutex.Unlock()
	log.Printf("room %s: seat reclaimed after grace period", room.ID)

	if empty {
		m.RoomsLock.Lock()
		delete(m.Rooms, room.ID)
		m.RoomsLock.Unlock()
		log.Printf("room %s reclaimed", room.ID)
	}
}

func stopRemoveTimer(s *model.PlayerSlot) {
	if s.RemoveTimer != nil {
		s.RemoveTimer.Stop()
		s.RemoveTimer = nil
	}
}

// Rematch deals a fresh game in the same room for the connection's seat.
func (m *Manager) Rematch(roomID string, conn *websocket.Conn) (*model.Room, error) {
	room := m.GetRoom(roomID)
	if room == nil {
		return nil, ErrRoomNotFound
	}

	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	if slotForConn(room, conn) == nil {
		return nil, ErrNotInRoom
	}
	if len(room.Slots) < 2 {
		return nil, ErrNeedTwo
	}
	room.Game = NewGame(rematchAttacker(room.Game))
	log.Printf("room %s: rematch, attacker %d", room.ID, room.Game.Attacker)
	return room, nil
}

// rematchAttacker is the dealer policy for follow-up hands: the fool leads.
// Draws and unfinished games fall back to the lowest-trump rule.
func rematchAttacker(prev *model.Game) int {
	if prev == nil || prev.Winner == nil || *prev.Winner == model.WinnerDraw {
		return -1
	}
	return 1 - *prev.Winner
}

func slotForConn(room *model.Room, conn *websocket.Conn) *model.PlayerSlot {
	for _, s := range room.Slots {
		if s.Conn == conn {
			return s
		}
	}
	return nil
}

// Settle records a finished hand once and pushes the room stats. Call with
// the room mutex held, right after a successful mutating action.
func (m *Manager) Settle(r *model.Room) {
	g := r.Game
	if g == nil || g.Phase != model.PhaseGameOver || g.ResultRecorded || g.Winner == nil {
		return
	}
	g.ResultRecorded = true
	log.Printf("room %s: game over, winner %d", r.ID, *g.Winner)
	if m.Store != nil {
		m.Store.RecordResult(r.ID, *g.Winner)
	}
	m.BroadcastStats(r)
}
