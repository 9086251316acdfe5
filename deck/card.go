package deck

import (
	"encoding/json"
	"fmt"
)

// Suit represents the colour of a Hanabi card. Each suit builds its own
// fireworks stack.
type Suit int

const (
	NullSuit Suit = iota
	Red
	Green
	Yellow
	Blue
	White
	Multicolor
)

var suitNames = []string{"", "red", "green", "yellow", "blue", "white", "multicolor"}

func (s Suit) String() string {
	if s < 0 || int(s) >= len(suitNames) {
		return ""
	}
	return suitNames[s]
}

// MarshalJSON encodes a Suit as its lowercase name.
func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a Suit from its lowercase name.
func (s *Suit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range suitNames {
		if n == name {
			*s = Suit(i)
			return nil
		}
	}
	return fmt.Errorf("unknown suit %q", name)
}

// Card represents a Hanabi card. Immutable once created.
type Card struct {
	Suit   Suit `json:"suit"`
	Number int  `json:"number"`
}

// NullCard marks an empty hand slot. Slots only empty out once the deck is
// exhausted and refills stop.
var NullCard = Card{NullSuit, 0}

// NewCard constructs a card
func NewCard(suit Suit, number int) Card {
	return Card{Suit: suit, Number: number}
}

// IsNull reports whether the card is the empty-slot marker.
func (c Card) IsNull() bool {
	return c == NullCard
}

func (c Card) String() string {
	if c.IsNull() {
		return "no card"
	}
	return fmt.Sprintf("%s %d", c.Suit, c.Number)
}
