package protocol

import "github.com/minaorangina/hanabi/deck"

// HintInfo is the content of a hint. The engine relays it verbatim: it never
// checks that the named slots really hold the named suit or number. Keeping
// players honest is their own problem, as in the table-top game.
type HintInfo struct {
	To     PlayerID   `json:"to"`
	Suit   *deck.Suit `json:"suit,omitempty"`
	Number *int       `json:"number,omitempty"`
	Slots  []int      `json:"slots,omitempty"`
}

// InboundMessage is a message from a player to the engine.
type InboundMessage struct {
	PlayerID PlayerID  `json:"player_id"`
	Command  Cmd       `json:"event"`
	CardID   int       `json:"card_id"`
	Hint     *HintInfo `json:"hint,omitempty"`
}

// OutboundMessage is a message from the engine to a player.
type OutboundMessage struct {
	Command  Cmd       `json:"event"`
	PlayerID PlayerID  `json:"player_id"`
	From     PlayerID  `json:"from"`
	View     *View     `json:"view,omitempty"`
	Hint     *HintInfo `json:"hint,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// PlayerStatus is one row of the waiting-room roster.
type PlayerStatus struct {
	PlayerID PlayerID `json:"player_id"`
	Ready    bool     `json:"ready"`
}

// View is the per-player projection of room state. Which fields are set
// depends on the room phase: the roster while waiting, everyone else's hands
// while in progress, and every hand plus the score once the game has ended.
type View struct {
	RoomState    string                   `json:"room_state"`
	Players      []PlayerStatus           `json:"players,omitempty"`
	VisibleHands map[PlayerID][]deck.Card `json:"visible_hands,omitempty"`
	AllHands     map[PlayerID][]deck.Card `json:"all_hands,omitempty"`
	Discard      *deck.CardPile           `json:"discard,omitempty"`
	Play         *deck.CardPile           `json:"play,omitempty"`
	HintCount    int                      `json:"hint_count"`
	FuseCount    int                      `json:"fuse_count"`
	TurnCount    int                      `json:"turn_count"`
	PlayerTurn   PlayerID                 `json:"player_turn"`
	DeckCount    int                      `json:"deck_count"`
	Score        int                      `json:"score"`
}
