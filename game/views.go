package game

import (
	"github.com/minaorangina/hanabi/deck"
	"github.com/minaorangina/hanabi/protocol"
)

// View builds the room projection for one player. While the game is in
// progress the viewer's own hand is left out of visible_hands, so players
// cannot see their own cards; once the game has ended every hand is shown.
// protocol.Referee yields the unfiltered view.
//
// The piles inside the view are live references. Callers serialise or copy
// them before releasing control back to the engine.
func (e *Engine) View(viewer protocol.PlayerID) protocol.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewFor(viewer)
}

// playerViews builds one personalised view per connected player. Callers
// must hold e.mu.
func (e *Engine) playerViews() map[protocol.PlayerID]protocol.View {
	views := make(map[protocol.PlayerID]protocol.View, len(e.players))
	for id := range e.players {
		views[id] = e.viewFor(id)
	}
	return views
}

func (e *Engine) viewFor(viewer protocol.PlayerID) protocol.View {
	switch e.state {
	case InProgress:
		return e.gameView(viewer)
	case End:
		return e.endView()
	default:
		return e.rosterView()
	}
}

// rosterView is the waiting-room projection: who is here and who is ready.
// No cards exist yet, so nothing can leak.
func (e *Engine) rosterView() protocol.View {
	roster := make([]protocol.PlayerStatus, 0, len(e.players))
	for id := protocol.PlayerID(0); id < e.nextID; id++ {
		if p, ok := e.players[id]; ok {
			roster = append(roster, protocol.PlayerStatus{PlayerID: id, Ready: p.ready})
		}
	}

	return protocol.View{
		RoomState: e.state.String(),
		Players:   roster,
	}
}

func (e *Engine) gameView(viewer protocol.PlayerID) protocol.View {
	visible := map[protocol.PlayerID][]deck.Card{}
	for id, hand := range e.hands {
		if id == viewer {
			continue
		}
		visible[id] = copyHand(hand)
	}

	return protocol.View{
		RoomState:    e.state.String(),
		VisibleHands: visible,
		Discard:      e.discardPile,
		Play:         e.playPile,
		HintCount:    e.hintCount,
		FuseCount:    e.fuseCount,
		TurnCount:    e.turn / AllowedPlayers,
		PlayerTurn:   e.currentPlayer(),
		DeckCount:    len(e.deck),
	}
}

func (e *Engine) endView() protocol.View {
	all := map[protocol.PlayerID][]deck.Card{}
	for id, hand := range e.hands {
		all[id] = copyHand(hand)
	}

	return protocol.View{
		RoomState:  e.state.String(),
		AllHands:   all,
		Discard:    e.discardPile,
		Play:       e.playPile,
		HintCount:  e.hintCount,
		FuseCount:  e.fuseCount,
		TurnCount:  e.turn / AllowedPlayers,
		PlayerTurn: e.currentPlayer(),
		Score:      e.score,
	}
}

func copyHand(hand Hand) []deck.Card {
	out := make([]deck.Card, len(hand))
	copy(out, hand)
	return out
}
