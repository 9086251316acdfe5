package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/pterm/pterm"

	"github.com/minaorangina/hanabi/deck"
	"github.com/minaorangina/hanabi/protocol"
)

func main() {
	addr := "ws://localhost:8000/ws"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}

	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		pterm.Error.Printfln("could not connect to %s: %s", addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	pterm.DefaultHeader.Println("Hanabi")
	pterm.Info.Println("Commands: ready | unready | play N | discard N | hint P suit NAME SLOTS... | hint P number N SLOTS... | quit")

	done := make(chan struct{})
	go listen(conn, done)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			break
		}

		msg, err := parseCommand(line)
		if err != nil {
			pterm.Warning.Println(err)
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			pterm.Error.Printfln("could not send: %s", err)
			break
		}
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	<-done
}

// listen renders every message from the server until the connection drops.
func listen(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			pterm.Info.Println("Connection closed")
			return
		}

		var msg protocol.OutboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			pterm.Warning.Printfln("unreadable message from server: %s", err)
			continue
		}
		render(msg)
	}
}

func render(msg protocol.OutboundMessage) {
	switch msg.Command {
	case protocol.Connected:
		pterm.Success.Printfln("Connected! You are player %d. Type \"ready\" when you want to start.", msg.PlayerID)
		renderRoster(msg.View)

	case protocol.ReadyChanged:
		renderRoster(msg.View)

	case protocol.Start:
		pterm.DefaultSection.Println("All players ready, game on!")
		renderGame(msg.View)

	case protocol.Update:
		renderGame(msg.View)

	case protocol.Hint:
		renderHint(msg.From, msg.Hint)

	case protocol.End:
		renderEnd(msg.View)

	case protocol.Rejected:
		pterm.Error.Printfln("Rejected: %s", msg.Error)

	default:
		pterm.Warning.Printfln("unexpected %s message", msg.Command)
	}
}

func renderRoster(view *protocol.View) {
	if view == nil {
		return
	}
	rows := pterm.TableData{{"Player", "Ready"}}
	for _, p := range view.Players {
		ready := "no"
		if p.Ready {
			ready = "yes"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", p.PlayerID), ready})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func renderGame(view *protocol.View) {
	if view == nil {
		return
	}

	hands := ""
	for _, id := range sortedHandIDs(view.VisibleHands) {
		hands += pterm.Sprintfln("player %d: %s", id, handString(view.VisibleHands[id]))
	}

	box := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2)
	panels := [][]pterm.Panel{
		{{Data: box.WithTitle("Other hands").Sprint(hands)}},
		{{Data: box.WithTitle("Fireworks").Sprint(pileString(view.Play))},
			{Data: box.WithTitle("Discards").Sprint(pileString(view.Discard))}},
	}
	pterm.DefaultPanel.WithPanels(panels).Render()

	pterm.Printfln("Hints: %d  Fuses: %d  Deck: %d  Round: %d  Turn: player %d",
		view.HintCount, view.FuseCount, view.DeckCount, view.TurnCount, view.PlayerTurn)
}

func renderHint(from protocol.PlayerID, hint *protocol.HintInfo) {
	if hint == nil {
		return
	}
	what := ""
	if hint.Suit != nil {
		what = hint.Suit.String()
	}
	if hint.Number != nil {
		what = strconv.Itoa(*hint.Number)
	}
	pterm.Info.Printfln("Player %d hints player %d: %s at slots %v", from, hint.To, what, hint.Slots)
}

func renderEnd(view *protocol.View) {
	if view == nil {
		return
	}
	pterm.DefaultSection.Println("Game over")
	for _, id := range sortedHandIDs(view.AllHands) {
		pterm.Printfln("player %d held: %s", id, handString(view.AllHands[id]))
	}
	pterm.DefaultBox.WithTitle("Final score").Printfln("%d", view.Score)
}

func sortedHandIDs(hands map[protocol.PlayerID][]deck.Card) []protocol.PlayerID {
	ids := make([]protocol.PlayerID, 0, len(hands))
	for id := range hands {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var suitColours = map[deck.Suit]pterm.Color{
	deck.Red:        pterm.FgRed,
	deck.Green:      pterm.FgGreen,
	deck.Yellow:     pterm.FgYellow,
	deck.Blue:       pterm.FgBlue,
	deck.White:      pterm.FgWhite,
	deck.Multicolor: pterm.FgMagenta,
}

func handString(hand []deck.Card) string {
	parts := make([]string, 0, len(hand))
	for slot, card := range hand {
		if card.IsNull() {
			parts = append(parts, fmt.Sprintf("[%d] --", slot))
			continue
		}
		parts = append(parts, suitColours[card.Suit].Sprintf("[%d] %s", slot, card))
	}
	return strings.Join(parts, "  ")
}

func pileString(pile *deck.CardPile) string {
	if pile == nil {
		return ""
	}
	data, err := json.Marshal(pile)
	if err != nil {
		return ""
	}
	return string(data)
}

func parseCommand(line string) (protocol.InboundMessage, error) {
	fields := strings.Fields(line)

	switch fields[0] {
	case "ready":
		return protocol.InboundMessage{Command: protocol.Ready}, nil

	case "unready":
		return protocol.InboundMessage{Command: protocol.Unready}, nil

	case "play", "discard":
		if len(fields) != 2 {
			return protocol.InboundMessage{}, fmt.Errorf("usage: %s N", fields[0])
		}
		cardID, err := strconv.Atoi(fields[1])
		if err != nil {
			return protocol.InboundMessage{}, fmt.Errorf("%q is not a slot number", fields[1])
		}
		cmd := protocol.Play
		if fields[0] == "discard" {
			cmd = protocol.Discard
		}
		return protocol.InboundMessage{Command: cmd, CardID: cardID}, nil

	case "hint":
		return parseHint(fields)

	default:
		return protocol.InboundMessage{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

func parseHint(fields []string) (protocol.InboundMessage, error) {
	usage := fmt.Errorf("usage: hint P suit NAME SLOTS... | hint P number N SLOTS...")
	if len(fields) < 5 {
		return protocol.InboundMessage{}, usage
	}

	to, err := strconv.Atoi(fields[1])
	if err != nil {
		return protocol.InboundMessage{}, usage
	}
	hint := protocol.HintInfo{To: protocol.PlayerID(to)}

	switch fields[2] {
	case "suit":
		quoted, _ := json.Marshal(fields[3])
		var suit deck.Suit
		if err := suit.UnmarshalJSON(quoted); err != nil {
			return protocol.InboundMessage{}, err
		}
		hint.Suit = &suit
	case "number":
		n, err := strconv.Atoi(fields[3])
		if err != nil {
			return protocol.InboundMessage{}, usage
		}
		hint.Number = &n
	default:
		return protocol.InboundMessage{}, usage
	}

	for _, f := range fields[4:] {
		slot, err := strconv.Atoi(f)
		if err != nil {
			return protocol.InboundMessage{}, usage
		}
		hint.Slots = append(hint.Slots, slot)
	}

	return protocol.InboundMessage{Command: protocol.Hint, Hint: &hint}, nil
}
