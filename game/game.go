package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/hanabi/deck"
	"github.com/minaorangina/hanabi/protocol"
)

const (
	// AllowedPlayers is the fixed number of players in a room.
	AllowedPlayers = 4
	// CardsPerHand is the fixed hand size.
	CardsPerHand = 4
	// MaxHints is the hint token ceiling.
	MaxHints = 8
	// MaxFuses is the number of mistakes the table survives.
	MaxFuses = 3
)

var (
	ErrRoomFull         = errors.New("room is full")
	ErrInvalidGameState = errors.New("action not valid in the current room state")
	ErrGameOver         = errors.New("game is already over")
	ErrUnknownPlayer    = errors.New("unknown player id")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrInvalidCardIndex = errors.New("card index out of range")
	ErrEmptySlot        = errors.New("no card in that slot")
	ErrNoHintsLeft      = errors.New("no hint tokens left")
	ErrHintsFull        = errors.New("hint tokens already at maximum")
)

// noPlayer marks endingPlayer as unset.
const noPlayer protocol.PlayerID = -1

type player struct {
	id    protocol.PlayerID
	ready bool
}

// Hand is a fixed-size sequence of card slots. A slot keeps its position for
// the whole game; once the deck runs dry a vacated slot holds deck.NullCard.
type Hand []deck.Card

// EngineOpts holds the dependencies and options for an Engine.
type EngineOpts struct {
	// Notifier receives state pushes. A nil Notifier discards them.
	Notifier Notifier
	// Level selects the card set (regular or advanced).
	Level deck.Level
	// Deck, if non-nil, is used instead of generating a fresh shuffled deck
	// when the game starts. Lets tests rig the draw order.
	Deck deck.Deck
	// OnDisconnect observes player disconnects. The engine applies no policy
	// of its own: a disconnected player simply stalls the game.
	OnDisconnect func(protocol.PlayerID)
}

// Engine is the state machine for a single Hanabi room. It owns all mutable
// game state; every exported method takes the one room-wide lock, since the
// counters it touches are not individually safe to update concurrently.
type Engine struct {
	mu           sync.Mutex
	notifier     Notifier
	level        deck.Level
	riggedDeck   deck.Deck
	onDisconnect func(protocol.PlayerID)

	state      RoomState
	players    map[protocol.PlayerID]*player
	nextID     protocol.PlayerID
	readyCount int

	deck           deck.Deck
	hands          map[protocol.PlayerID]Hand
	discardPile    *deck.CardPile
	playPile       *deck.CardPile
	turn           int
	hintCount      int
	fuseCount      int
	completedSuits map[deck.Suit]bool
	endingPlayer   protocol.PlayerID
	score          int
	endReason      EndReason
}

// NewEngine constructs an Engine for a room in the waiting state.
func NewEngine(opts EngineOpts) *Engine {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}

	return &Engine{
		notifier:     notifier,
		level:        opts.Level,
		riggedDeck:   opts.Deck,
		onDisconnect: opts.OnDisconnect,
		state:        Waiting,
		players:      map[protocol.PlayerID]*player{},
		endingPlayer: noPlayer,
	}
}

// State returns the room phase.
func (e *Engine) State() RoomState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Reason returns why the game ended, or NotEnded.
func (e *Engine) Reason() EndReason {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.endReason
}

// Connect admits a new player and returns their id. IDs are sequential from
// zero and never reused, even after a disconnect.
func (e *Engine) Connect() (protocol.PlayerID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Waiting || len(e.players) == AllowedPlayers {
		return noPlayer, ErrRoomFull
	}

	id := e.nextID
	e.nextID++
	e.players[id] = &player{id: id}

	return id, nil
}

// Disconnect acknowledges that a player has gone away. Deliberately a no-op
// beyond the hook: no pause or forfeit policy exists yet, so the game stalls
// until the player's seat is reconnected by the transport.
func (e *Engine) Disconnect(id protocol.PlayerID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.players[id]; !ok {
		return ErrUnknownPlayer
	}
	if e.onDisconnect != nil {
		e.onDisconnect(id)
	}
	return nil
}

// Ready marks a player as ready to start. The fourth ready starts the game
// within the same call.
func (e *Engine) Ready(id protocol.PlayerID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkState(Waiting); err != nil {
		return err
	}
	p, ok := e.players[id]
	if !ok {
		return ErrUnknownPlayer
	}

	if !p.ready {
		p.ready = true
		e.readyCount++
	}
	e.notifier.OnReadyChanged(e.rosterView())

	if e.readyCount == AllowedPlayers {
		e.startGame()
	}
	return nil
}

// Unready clears a player's ready flag.
func (e *Engine) Unready(id protocol.PlayerID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkState(Waiting); err != nil {
		return err
	}
	p, ok := e.players[id]
	if !ok {
		return ErrUnknownPlayer
	}

	if p.ready {
		p.ready = false
		e.readyCount--
	}
	e.notifier.OnReadyChanged(e.rosterView())
	return nil
}

// Discard moves the named card to the discard pile in exchange for a hint
// token, refilling the slot from the deck.
func (e *Engine) Discard(id protocol.PlayerID, cardID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkTurn(id); err != nil {
		return err
	}
	if cardID < 0 || cardID >= CardsPerHand {
		return ErrInvalidCardIndex
	}
	if e.hintCount == MaxHints {
		return ErrHintsFull
	}

	hand := e.hands[id]
	card := hand[cardID]
	if card.IsNull() {
		return ErrEmptySlot
	}

	e.discardPile.Add(card)
	hand[cardID] = deck.NullCard

	if ended := e.drawNextCard(hand, cardID); ended {
		return nil
	}

	e.hintCount++
	e.turn++
	e.notifier.OnUpdate(e.playerViews())
	return nil
}

// Hint spends a hint token and relays the hint to every other player. The
// content is not validated; the engine is not the hint police.
func (e *Engine) Hint(id protocol.PlayerID, hint protocol.HintInfo) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkTurn(id); err != nil {
		return err
	}
	if e.hintCount == 0 {
		return ErrNoHintsLeft
	}

	e.hintCount--
	e.turn++
	e.notifier.OnHint(id, hint)
	e.notifier.OnUpdate(e.playerViews())
	return nil
}

// Play attempts to add the named card to the play pile. A wrong card burns a
// fuse and lands on the discard pile instead.
func (e *Engine) Play(id protocol.PlayerID, cardID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkTurn(id); err != nil {
		return err
	}
	if cardID < 0 || cardID >= CardsPerHand {
		return ErrInvalidCardIndex
	}

	hand := e.hands[id]
	card := hand[cardID]
	if card.IsNull() {
		return ErrEmptySlot
	}
	hand[cardID] = deck.NullCard

	if e.isPlayCorrect(card) {
		e.playPile.Add(card)

		if card.Number == 5 {
			e.completedSuits[card.Suit] = true
			if e.hintCount < MaxHints {
				e.hintCount++
			}
		}
		if len(e.completedSuits) == len(deck.Suits(e.level)) {
			e.endGame(AllSuitsComplete)
			return nil
		}
	} else {
		e.discardPile.Add(card)
		e.fuseCount--

		if e.fuseCount == 0 {
			e.endGame(FuseBurnt)
			return nil
		}
	}

	if ended := e.drawNextCard(hand, cardID); ended {
		return nil
	}

	e.turn++
	e.notifier.OnUpdate(e.playerViews())
	return nil
}

// startGame initialises all in-progress state fresh and deals the opening
// hands in player-id order: player 0 is fully dealt before player 1, and so
// on.
func (e *Engine) startGame() {
	for _, p := range e.players {
		p.ready = false
	}
	e.readyCount = 0

	if e.riggedDeck != nil {
		e.deck = e.riggedDeck
		e.riggedDeck = nil
	} else {
		e.deck = deck.New(e.level)
	}

	e.hands = map[protocol.PlayerID]Hand{}
	for id := protocol.PlayerID(0); id < AllowedPlayers; id++ {
		hand := make(Hand, CardsPerHand)
		for slot := range hand {
			card, err := e.deck.Draw()
			if err != nil {
				panic(fmt.Sprintf("dealing to player %d: %s", id, err))
			}
			hand[slot] = card
		}
		e.hands[id] = hand
	}

	e.discardPile = deck.NewCardPile()
	e.playPile = deck.NewCardPile()
	e.turn = 0
	e.hintCount = MaxHints
	e.fuseCount = MaxFuses
	e.completedSuits = map[deck.Suit]bool{}
	e.endingPlayer = noPlayer
	e.score = 0
	e.endReason = NotEnded
	e.state = InProgress

	e.notifier.OnStart(e.playerViews())
}

// drawNextCard refills the vacated slot, if the rules still allow a draw.
// The draw that empties the deck marks the current player as the ending
// player; when their turn comes round again the game ends instead. Reports
// whether this call ended the game.
func (e *Engine) drawNextCard(hand Hand, slot int) bool {
	if e.endingPlayer == noPlayer {
		if len(e.deck) > 0 {
			card, err := e.deck.Draw()
			if err != nil {
				panic(fmt.Sprintf("drawing into slot %d: %s", slot, err))
			}
			hand[slot] = card

			if len(e.deck) == 0 {
				e.endingPlayer = e.currentPlayer()
			}
		}
		return false
	}

	if e.currentPlayer() == e.endingPlayer {
		e.endGame(DeckExhausted)
		return true
	}

	// final round: the hand legitimately shrinks
	return false
}

// endGame freezes the room and pushes the terminal views.
func (e *Engine) endGame(reason EndReason) {
	e.state = End
	e.endReason = reason

	score := 0
	for _, suit := range deck.Suits(e.level) {
		if top, ok := e.playPile.Top(suit); ok {
			score += top
		}
	}
	e.score = score

	e.notifier.OnEnd(e.playerViews())
}

// isPlayCorrect checks the card against the top of its suit's stack, i.e.
// whether it belongs on the play pile right now.
func (e *Engine) isPlayCorrect(card deck.Card) bool {
	top, ok := e.playPile.Top(card.Suit)
	if !ok {
		return card.Number == 1
	}
	return top+1 == card.Number
}

func (e *Engine) currentPlayer() protocol.PlayerID {
	return protocol.PlayerID(e.turn % AllowedPlayers)
}

func (e *Engine) checkState(want RoomState) error {
	if e.state == want {
		return nil
	}
	if e.state == End {
		return ErrGameOver
	}
	return ErrInvalidGameState
}

func (e *Engine) checkTurn(id protocol.PlayerID) error {
	if err := e.checkState(InProgress); err != nil {
		return err
	}
	if _, ok := e.players[id]; !ok {
		return ErrUnknownPlayer
	}
	if e.currentPlayer() != id {
		return ErrNotYourTurn
	}
	return nil
}

type noopNotifier struct{}

func (noopNotifier) OnStart(map[protocol.PlayerID]protocol.View) {}

func (noopNotifier) OnReadyChanged(protocol.View) {}

func (noopNotifier) OnUpdate(map[protocol.PlayerID]protocol.View) {}

func (noopNotifier) OnHint(protocol.PlayerID, protocol.HintInfo) {}

func (noopNotifier) OnEnd(map[protocol.PlayerID]protocol.View) {}
