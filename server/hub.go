package server

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"github.com/minaorangina/hanabi/game"
	"github.com/minaorangina/hanabi/protocol"
)

// sendBuffer is the per-client outbound queue length. A client that falls
// this far behind starts losing updates rather than blocking the room.
const sendBuffer = 32

// client wraps one player's websocket connection. The id is only for log
// correlation; the playerID is the game identity.
type client struct {
	id       string
	playerID protocol.PlayerID
	conn     *websocket.Conn
	send     chan []byte
}

func newClient(playerID protocol.PlayerID, conn *websocket.Conn) *client {
	return &client{
		id:       uuid.NewV4().String(),
		playerID: playerID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
	}
}

// writePump drains the send queue onto the websocket. Runs as the only
// writer for the connection.
func (c *client) writePump() {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("conn %s: write failed: %s", c.id, err)
			return
		}
	}
}

// hub is the connection registry for the room. It implements game.Notifier:
// the engine calls it while holding the room lock, so the hub only marshals
// and queues, never calls back into the engine.
type hub struct {
	mu      sync.Mutex
	clients map[protocol.PlayerID]*client
}

var _ game.Notifier = (*hub)(nil)

func newHub() *hub {
	return &hub{clients: map[protocol.PlayerID]*client{}}
}

func (h *hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.playerID] = c
}

func (h *hub) unregister(playerID protocol.PlayerID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[playerID]
	if !ok {
		return
	}
	delete(h.clients, playerID)
	close(c.send)
}

// sendTo queues a message for one player. Messages to players with a full
// queue or no connection are dropped.
func (h *hub) sendTo(playerID protocol.PlayerID, msg protocol.OutboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("player %d: could not marshal %s message: %s", playerID, msg.Command, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliver(playerID, data)
}

// deliver queues raw bytes for one player. Callers must hold h.mu.
func (h *hub) deliver(playerID protocol.PlayerID, data []byte) {
	c, ok := h.clients[playerID]
	if !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("conn %s: send queue full, dropping message", c.id)
	}
}

func (h *hub) OnStart(views map[protocol.PlayerID]protocol.View) {
	h.sendViews(protocol.Start, views)
}

func (h *hub) OnUpdate(views map[protocol.PlayerID]protocol.View) {
	h.sendViews(protocol.Update, views)
}

func (h *hub) OnEnd(views map[protocol.PlayerID]protocol.View) {
	h.sendViews(protocol.End, views)
}

func (h *hub) OnReadyChanged(roster protocol.View) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for playerID := range h.clients {
		msg := protocol.OutboundMessage{
			Command:  protocol.ReadyChanged,
			PlayerID: playerID,
			View:     &roster,
		}
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("player %d: could not marshal roster: %s", playerID, err)
			continue
		}
		h.deliver(playerID, data)
	}
}

func (h *hub) OnHint(from protocol.PlayerID, hint protocol.HintInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for playerID := range h.clients {
		if playerID == from {
			continue
		}
		msg := protocol.OutboundMessage{
			Command:  protocol.Hint,
			PlayerID: playerID,
			From:     from,
			Hint:     &hint,
		}
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("player %d: could not marshal hint: %s", playerID, err)
			continue
		}
		h.deliver(playerID, data)
	}
}

func (h *hub) sendViews(cmd protocol.Cmd, views map[protocol.PlayerID]protocol.View) {
	for playerID, view := range views {
		view := view
		h.sendTo(playerID, protocol.OutboundMessage{
			Command:  cmd,
			PlayerID: playerID,
			View:     &view,
		})
	}
}
