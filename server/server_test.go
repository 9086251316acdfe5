package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/minaorangina/hanabi/deck"
	"github.com/minaorangina/hanabi/game"
	utils "github.com/minaorangina/hanabi/internal"
	"github.com/minaorangina/hanabi/protocol"
)

func newTestServer(t *testing.T, opts Opts) *httptest.Server {
	t.Helper()

	if opts.StaticDir == "" {
		dir := t.TempDir()
		index := []byte("<!DOCTYPE html><html><body>hanabi</body></html>")
		if err := os.WriteFile(filepath.Join(dir, "index.html"), index, 0o644); err != nil {
			t.Fatal(err)
		}
		opts.StaticDir = dir
	}

	server := httptest.NewServer(NewServer(opts))
	t.Cleanup(server.Close)
	return server
}

func dialWS(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	utils.AssertNoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) protocol.OutboundMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	utils.AssertNoError(t, err)

	var msg protocol.OutboundMessage
	utils.AssertNoError(t, json.Unmarshal(data, &msg))
	return msg
}

// readUntil discards messages until one with the wanted command arrives.
func readUntil(t *testing.T, conn *websocket.Conn, want protocol.Cmd) protocol.OutboundMessage {
	t.Helper()

	for i := 0; i < 32; i++ {
		msg := readMessage(t, conn)
		if msg.Command == want {
			return msg
		}
	}
	t.Fatalf("gave up waiting for a %s message", want)
	return protocol.OutboundMessage{}
}

func sendMessage(t *testing.T, conn *websocket.Conn, msg protocol.InboundMessage) {
	t.Helper()
	utils.AssertNoError(t, conn.WriteJSON(msg))
}

func TestServeIndex(t *testing.T) {
	server := newTestServer(t, Opts{})

	t.Run("root serves the index page", func(t *testing.T) {
		res, err := http.Get(server.URL + "/")
		utils.AssertNoError(t, err)
		defer res.Body.Close()
		utils.AssertEqual(t, res.StatusCode, http.StatusOK)
	})

	t.Run("unknown paths 404", func(t *testing.T) {
		res, err := http.Get(server.URL + "/nonsense")
		utils.AssertNoError(t, err)
		defer res.Body.Close()
		utils.AssertEqual(t, res.StatusCode, http.StatusNotFound)
	})
}

func TestWSConnect(t *testing.T) {
	t.Run("new players get sequential ids and the waiting view", func(t *testing.T) {
		server := newTestServer(t, Opts{})

		for i := 0; i < game.AllowedPlayers; i++ {
			conn := dialWS(t, server.URL)
			msg := readMessage(t, conn)

			utils.AssertEqual(t, msg.Command, protocol.Connected)
			utils.AssertEqual(t, msg.PlayerID, protocol.PlayerID(i))
			if msg.View == nil {
				t.Fatal("expected a view with the connected message")
			}
			utils.AssertEqual(t, msg.View.RoomState, "waiting")
			utils.AssertEqual(t, len(msg.View.Players), i+1)
		}
	})

	t.Run("a fifth connection is rejected", func(t *testing.T) {
		server := newTestServer(t, Opts{})

		for i := 0; i < game.AllowedPlayers; i++ {
			conn := dialWS(t, server.URL)
			readMessage(t, conn)
		}

		conn := dialWS(t, server.URL)
		msg := readMessage(t, conn)
		utils.AssertEqual(t, msg.Command, protocol.Rejected)
		utils.AssertEqual(t, msg.Error, game.ErrRoomFull.Error())
	})
}

func TestWSGameFlow(t *testing.T) {
	hands := [][]deck.Card{
		{deck.NewCard(deck.Red, 1), deck.NewCard(deck.Red, 2), deck.NewCard(deck.Red, 3), deck.NewCard(deck.Red, 4)},
		{deck.NewCard(deck.Green, 1), deck.NewCard(deck.Green, 2), deck.NewCard(deck.Green, 3), deck.NewCard(deck.Green, 4)},
		{deck.NewCard(deck.Yellow, 1), deck.NewCard(deck.Yellow, 2), deck.NewCard(deck.Yellow, 3), deck.NewCard(deck.Yellow, 4)},
		{deck.NewCard(deck.Blue, 1), deck.NewCard(deck.Blue, 2), deck.NewCard(deck.Blue, 3), deck.NewCard(deck.Blue, 4)},
	}
	rigged := deck.Deck{}
	for _, h := range hands {
		rigged = append(rigged, h...)
	}
	for i := 0; i < 10; i++ {
		rigged = append(rigged, deck.NewCard(deck.White, 1))
	}

	server := newTestServer(t, Opts{Deck: rigged})

	conns := make([]*websocket.Conn, game.AllowedPlayers)
	for i := range conns {
		conns[i] = dialWS(t, server.URL)
		readMessage(t, conns[i])
	}

	t.Run("readying everyone starts the game", func(t *testing.T) {
		for _, conn := range conns {
			sendMessage(t, conn, protocol.InboundMessage{Command: protocol.Ready})
		}

		for i, conn := range conns {
			msg := readUntil(t, conn, protocol.Start)
			view := msg.View

			utils.AssertEqual(t, view.RoomState, "in_progress")
			utils.AssertEqual(t, view.PlayerTurn, protocol.PlayerID(0))

			_, ownVisible := view.VisibleHands[protocol.PlayerID(i)]
			utils.AssertTrue(t, !ownVisible)
			utils.AssertEqual(t, len(view.VisibleHands), game.AllowedPlayers-1)
		}
	})

	t.Run("an out-of-turn move is rejected to the offender only", func(t *testing.T) {
		sendMessage(t, conns[1], protocol.InboundMessage{Command: protocol.Play, CardID: 0})

		msg := readUntil(t, conns[1], protocol.Rejected)
		utils.AssertEqual(t, msg.Error, game.ErrNotYourTurn.Error())
	})

	t.Run("a hint reaches everyone except the sender", func(t *testing.T) {
		n := 1
		sendMessage(t, conns[0], protocol.InboundMessage{
			Command: protocol.Hint,
			Hint:    &protocol.HintInfo{To: 2, Number: &n, Slots: []int{0, 1}},
		})

		for i := 1; i < game.AllowedPlayers; i++ {
			msg := readUntil(t, conns[i], protocol.Hint)
			utils.AssertEqual(t, msg.From, protocol.PlayerID(0))
			utils.AssertEqual(t, msg.Hint.To, protocol.PlayerID(2))
		}

		// the sender gets the update but never the hint itself
		msg := readUntil(t, conns[0], protocol.Update)
		utils.AssertEqual(t, msg.Command, protocol.Update)
		utils.AssertEqual(t, msg.View.HintCount, 7)
	})

	t.Run("a legal play updates every client", func(t *testing.T) {
		sendMessage(t, conns[1], protocol.InboundMessage{Command: protocol.Play, CardID: 0})

		msg := readUntil(t, conns[0], protocol.Update)
		top, ok := msg.View.Play.Top(deck.Green)
		utils.AssertTrue(t, ok)
		utils.AssertEqual(t, top, 1)
		utils.AssertEqual(t, msg.View.PlayerTurn, protocol.PlayerID(2))
	})
}

func TestWSMalformedMessage(t *testing.T) {
	server := newTestServer(t, Opts{})

	conn := dialWS(t, server.URL)
	readMessage(t, conn)

	utils.AssertNoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	msg := readMessage(t, conn)
	utils.AssertEqual(t, msg.Command, protocol.Rejected)
}
