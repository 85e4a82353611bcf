package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"durak/internal/game"
	"durak/internal/model"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

var errUnknownAction = errors.New("unknown action")

type Handler struct {
	Manager *game.Manager
}

func NewHandler(m *game.Manager) *Handler {
	return &Handler{Manager: m}
}

// CreateRoomHandler pre-provisions a room, used by the invite bot before any
// player connects.
func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	room := h.Manager.CreateRoom()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"roomId": room.ID})
}

// CheckRoomHandler lets the client validate an invite link before opening the
// websocket.
func (h *Handler) CheckRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("id")
	exists := h.Manager.GetRoom(roomID) != nil
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"exists": exists})
}

func errorMessage(err error) model.Message {
	return model.Message{Type: "error", Payload: err.Error()}
}

func okMessage(action string) model.Message {
	return model.Message{Type: "ok", Payload: map[string]string{"action": action}}
}

// HandleGameWS runs one connection's read loop. Every inbound action gets
// exactly one reply (joined/ok/error); state pushes ride alongside.
func (h *Handler) HandleGameWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	defer func() {
		h.Manager.Disconnect(ws)
		ws.Close()
	}()

	for {
		var action model.Action
		if err := ws.ReadJSON(&action); err != nil {
			break
		}

		switch action.Type {
		case "createRoom":
			room := h.Manager.CreateRoom()
			h.join(ws, room.ID, "")

		case "joinRoom":
			h.join(ws, action.RoomID, action.Token)

		case "playCard":
			h.apply(ws, action.RoomID, "playCard", func(g *model.Game, player int) error {
				return game.PlayCard(g, player, action.CardID, action.TargetPairIndex)
			})

		case "declareBeaten":
			h.apply(ws, action.RoomID, "declareBeaten", game.DeclareBeaten)

		case "declareTake":
			h.apply(ws, action.RoomID, "declareTake", game.DeclareTake)

		case "finishThrowingIn":
			h.apply(ws, action.RoomID, "finishThrowingIn", game.FinishThrowingIn)

		case "rematch":
			room, err := h.Manager.Rematch(action.RoomID, ws)
			if err != nil {
				ws.WriteJSON(errorMessage(err))
				continue
			}
			room.Mutex.Lock()
			ws.WriteJSON(okMessage("rematch"))
			h.Manager.BroadcastState(room)
			room.Mutex.Unlock()

		default:
			ws.WriteJSON(errorMessage(errUnknownAction))
		}
	}
}

// join seats the connection, trying the reconnection token first when one is
// supplied; an unknown token falls back to a normal join.
func (h *Handler) join(ws *websocket.Conn, roomID, token string) {
	if token != "" {
		if room, slot, err := h.Manager.Reconnect(roomID, token, ws); err == nil {
			room.Mutex.Lock()
			ws.WriteJSON(model.Message{Type: "joined", Payload: model.JoinResult{
				RoomID:      room.ID,
				Token:       slot.Token,
				PlayerIndex: slot.Index,
				Reconnected: true,
			}})
			h.Manager.BroadcastState(room)
			room.Mutex.Unlock()
			return
		}
	}

	room, slot, err := h.Manager.Join(roomID, ws)
	if err != nil {
		ws.WriteJSON(errorMessage(err))
		return
	}
	room.Mutex.Lock()
	ws.WriteJSON(model.Message{Type: "joined", Payload: model.JoinResult{
		RoomID:      room.ID,
		Token:       slot.Token,
		PlayerIndex: slot.Index,
	}})
	h.Manager.BroadcastState(room)
	h.Manager.BroadcastStats(room)
	room.Mutex.Unlock()
}

// apply resolves the sender's seat, runs the engine operation under the room
// mutex and, on success, acks and pushes fresh views. Failed operations never
// mutate and never reach the other player.
func (h *Handler) apply(ws *websocket.Conn, roomID, name string, fn func(*model.Game, int) error) {
	room := h.Manager.GetRoom(roomID)
	if room == nil {
		ws.WriteJSON(errorMessage(game.ErrRoomNotFound))
		return
	}

	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	slot := slotFor(room, ws)
	if slot == nil {
		ws.WriteJSON(errorMessage(game.ErrNotInRoom))
		return
	}
	if room.Game == nil {
		ws.WriteJSON(errorMessage(game.ErrNoGame))
		return
	}

	if err := fn(room.Game, slot.Index); err != nil {
		log.Printf("room %s: seat %d %s rejected: %v", room.ID, slot.Index, name, err)
		ws.WriteJSON(errorMessage(err))
		return
	}

	ws.WriteJSON(okMessage(name))
	h.Manager.BroadcastState(room)
	h.Manager.Settle(room)
}

func slotFor(room *model.Room, ws *websocket.Conn) *model.PlayerSlot {
	for _, s := range room.Slots {
		if s.Conn == ws {
			return s
		}
	}
	return nil
}
