package deck

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrEmptyDeck is returned by Draw on an empty deck. The engine checks the
// deck length before drawing, so seeing this error means a logic defect.
var ErrEmptyDeck = errors.New("deck is empty")

// Level selects the card set for a game.
type Level int

const (
	// Regular is the five-suit, 50-card game.
	Regular Level = iota
	// Advanced adds the multicolor suit for a 60-card game.
	Advanced
)

var levelNames = []string{"regular", "advanced"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return ""
	}
	return levelNames[l]
}

// ParseLevel converts a level name into a Level.
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return Regular, fmt.Errorf("unknown play level %q", name)
}

// Suits returns the suits in play for the given level.
func Suits(level Level) []Suit {
	suits := []Suit{Red, Green, Yellow, Blue, White}
	if level == Advanced {
		suits = append(suits, Multicolor)
	}
	return suits
}

// numbers is the multiset of card numbers per suit.
var numbers = []int{1, 1, 1, 2, 2, 3, 3, 4, 4, 5}

// Deck represents a drawing deck of Hanabi cards, consumed from the front.
type Deck []Card

// New creates a shuffled deck for the given level.
func New(level Level) Deck {
	cards := Deck{}
	for _, suit := range Suits(level) {
		for _, n := range numbers {
			cards = append(cards, NewCard(suit, n))
		}
	}
	cards.Shuffle()
	return cards
}

// Shuffle shuffles the deck of cards
func (d Deck) Shuffle() {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Draw removes and returns the front card.
func (d *Deck) Draw() (Card, error) {
	if len(*d) == 0 {
		return NullCard, ErrEmptyDeck
	}
	card := (*d)[0]
	*d = (*d)[1:]
	return card, nil
}
