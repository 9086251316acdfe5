package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gorilla/websocket"

	"github.com/minaorangina/hanabi/deck"
	"github.com/minaorangina/hanabi/game"
	"github.com/minaorangina/hanabi/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Opts configures a GameServer.
type Opts struct {
	// Level selects the card set for the room's game.
	Level deck.Level
	// StaticDir is the directory the index page and assets are served from.
	StaticDir string
	// Deck overrides deck generation; used to rig games in tests.
	Deck deck.Deck
}

// GameServer hosts a single Hanabi room: a static index page plus the
// websocket endpoint the whole game is played over. The room lives and dies
// with the process.
type GameServer struct {
	engine *game.Engine
	hub    *hub
	http.Server
}

// NewServer wires up a fresh room: the hub, the engine that notifies it, and
// the routes.
func NewServer(opts Opts) *GameServer {
	s := new(GameServer)

	s.hub = newHub()
	s.engine = game.NewEngine(game.EngineOpts{
		Notifier: s.hub,
		Level:    opts.Level,
		Deck:     opts.Deck,
		OnDisconnect: func(id protocol.PlayerID) {
			log.Printf("player %d disconnected; game stalls until they return", id)
		},
	})

	staticDir := opts.StaticDir
	if staticDir == "" {
		staticDir = "./static"
	}

	router := http.NewServeMux()
	router.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	}))
	router.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	s.Handler = router

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// Engine exposes the room's engine, mainly for the referee view.
func (g *GameServer) Engine() *game.Engine {
	return g.engine
}

// HandleWS admits a player into the room over a websocket. The socket is the
// player's identity for its lifetime; there is no separate authentication.
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("could not upgrade to websocket: %s", err)
		return
	}

	playerID, err := g.engine.Connect()
	if err != nil {
		rejection := protocol.OutboundMessage{Command: protocol.Rejected, PlayerID: protocol.Referee, Error: err.Error()}
		if err := rawConn.WriteJSON(rejection); err != nil {
			log.Printf("could not reject connection: %s", err)
		}
		rawConn.Close()
		return
	}

	c := newClient(playerID, rawConn)
	g.hub.register(c)
	go c.writePump()
	go g.readPump(c)

	view := g.engine.View(playerID)
	g.hub.sendTo(playerID, protocol.OutboundMessage{
		Command:  protocol.Connected,
		PlayerID: playerID,
		View:     &view,
	})

	log.Printf("player %d connected (conn %s)", playerID, c.id)
}

// readPump relays inbound messages from one socket to the engine, echoing
// rejected actions back to the offending client only.
func (g *GameServer) readPump(c *client) {
	defer func() {
		g.hub.unregister(c.playerID)
		c.conn.Close()
		if err := g.engine.Disconnect(c.playerID); err != nil {
			log.Printf("conn %s: disconnect: %s", c.id, err)
		}
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("conn %s: read failed: %s", c.id, err)
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			g.reject(c, fmt.Errorf("could not parse message: %s", err))
			continue
		}

		if err := g.dispatch(c.playerID, msg); err != nil {
			g.reject(c, err)
		}
	}
}

// dispatch maps an inbound message to an engine call. The player id comes
// from the connection, never from the message body.
func (g *GameServer) dispatch(playerID protocol.PlayerID, msg protocol.InboundMessage) error {
	switch msg.Command {
	case protocol.Ready:
		return g.engine.Ready(playerID)
	case protocol.Unready:
		return g.engine.Unready(playerID)
	case protocol.Discard:
		return g.engine.Discard(playerID, msg.CardID)
	case protocol.Play:
		return g.engine.Play(playerID, msg.CardID)
	case protocol.Hint:
		if msg.Hint == nil {
			return errors.New("hint message has no hint content")
		}
		return g.engine.Hint(playerID, *msg.Hint)
	default:
		return fmt.Errorf("unexpected command %q", msg.Command)
	}
}

func (g *GameServer) reject(c *client, reason error) {
	g.hub.sendTo(c.playerID, protocol.OutboundMessage{
		Command:  protocol.Rejected,
		PlayerID: c.playerID,
		Error:    reason.Error(),
	})
}
