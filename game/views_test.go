package game

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/minaorangina/hanabi/deck"
	utils "github.com/minaorangina/hanabi/internal"
	"github.com/minaorangina/hanabi/protocol"
)

func TestWaitingView(t *testing.T) {
	e := NewEngine(EngineOpts{})
	for i := 0; i < 3; i++ {
		_, err := e.Connect()
		utils.AssertNoError(t, err)
	}
	utils.AssertNoError(t, e.Ready(1))

	t.Run("referee view is the full roster", func(t *testing.T) {
		view := e.View(protocol.Referee)

		utils.AssertEqual(t, view.RoomState, "waiting")
		utils.AssertDeepEqual(t, view.Players, []protocol.PlayerStatus{
			{PlayerID: 0, Ready: false},
			{PlayerID: 1, Ready: true},
			{PlayerID: 2, Ready: false},
		})
	})

	t.Run("no cards leak before the game starts", func(t *testing.T) {
		data, err := json.Marshal(e.View(protocol.Referee))
		utils.AssertNoError(t, err)

		payload := string(data)
		utils.AssertTrue(t, !strings.Contains(payload, "suit"))
		utils.AssertTrue(t, !strings.Contains(payload, "hands"))
	})
}

func TestGameViews(t *testing.T) {
	hands := [][]deck.Card{
		suitRun(deck.Red, 1, 2, 3, 4),
		suitRun(deck.Green, 1, 2, 3, 4),
		suitRun(deck.Yellow, 1, 2, 3, 4),
		suitRun(deck.Blue, 1, 2, 3, 4),
	}
	e := NewEngine(EngineOpts{Deck: deckFromHands(hands, suitRun(deck.White, 1, 1, 1)...)})
	seatAndStart(t, e)

	t.Run("a player's own hand is hidden", func(t *testing.T) {
		view := e.View(2)

		utils.AssertEqual(t, view.RoomState, "in_progress")
		_, ownVisible := view.VisibleHands[2]
		utils.AssertTrue(t, !ownVisible)
		utils.AssertDeepEqual(t, view.VisibleHands[0], hands[0])
		utils.AssertDeepEqual(t, view.VisibleHands[1], hands[1])
		utils.AssertDeepEqual(t, view.VisibleHands[3], hands[3])
	})

	t.Run("referee sees every hand", func(t *testing.T) {
		view := e.View(protocol.Referee)
		utils.AssertEqual(t, len(view.VisibleHands), AllowedPlayers)
	})

	t.Run("mutating a view's hand does not touch the engine", func(t *testing.T) {
		view := e.View(protocol.Referee)
		view.VisibleHands[0][0] = deck.NewCard(deck.White, 5)

		fresh := e.View(protocol.Referee)
		utils.AssertEqual(t, fresh.VisibleHands[0][0], deck.NewCard(deck.Red, 1))
	})
}

func TestEndView(t *testing.T) {
	hands := [][]deck.Card{
		suitRun(deck.Red, 2, 3, 4, 5),
		suitRun(deck.Green, 2, 3, 4, 5),
		suitRun(deck.Yellow, 2, 3, 4, 5),
		suitRun(deck.Blue, 2, 3, 4, 5),
	}
	e := NewEngine(EngineOpts{Deck: deckFromHands(hands, suitRun(deck.White, 1, 1, 1)...)})
	seatAndStart(t, e)

	// burn all three fuses
	utils.AssertNoError(t, e.Play(0, 0))
	utils.AssertNoError(t, e.Play(1, 0))
	utils.AssertNoError(t, e.Play(2, 0))
	utils.AssertEqual(t, e.State(), End)

	t.Run("every hand is revealed, own included", func(t *testing.T) {
		view := e.View(1)

		utils.AssertEqual(t, view.RoomState, "end")
		utils.AssertEqual(t, len(view.AllHands), AllowedPlayers)
		utils.AssertEqual(t, len(view.VisibleHands), 0)
		// player 1's replacement card was drawn into slot 0
		utils.AssertEqual(t, view.AllHands[1][0], deck.NewCard(deck.White, 1))
		utils.AssertEqual(t, view.AllHands[1][1], deck.NewCard(deck.Green, 3))
	})

	t.Run("score and round count are final", func(t *testing.T) {
		view := e.View(protocol.Referee)
		utils.AssertEqual(t, view.Score, 0)
		utils.AssertEqual(t, view.TurnCount, 0) // game ended during the first round
	})
}
