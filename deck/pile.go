package deck

import (
	"encoding/json"
	"sort"
)

// CardPile holds per-suit stacks of card numbers in ascending order. It backs
// both the play pile (contiguous 1..k per suit, enforced by the engine) and
// the discard pile (duplicates allowed).
type CardPile struct {
	piles map[Suit][]int
}

// NewCardPile constructs an empty CardPile
func NewCardPile() *CardPile {
	return &CardPile{piles: map[Suit][]int{}}
}

// Add inserts the card's number into its suit's stack, keeping the stack
// sorted ascending. There is no removal.
func (p *CardPile) Add(card Card) {
	stack, ok := p.piles[card.Suit]
	if !ok {
		p.piles[card.Suit] = []int{card.Number}
		return
	}

	i := sort.SearchInts(stack, card.Number+1)
	stack = append(stack, 0)
	copy(stack[i+1:], stack[i:])
	stack[i] = card.Number
	p.piles[card.Suit] = stack
}

// Top returns the highest number in the suit's stack, and whether the suit
// has any cards at all.
func (p *CardPile) Top(suit Suit) (int, bool) {
	stack, ok := p.piles[suit]
	if !ok || len(stack) == 0 {
		return 0, false
	}
	return stack[len(stack)-1], true
}

// Count returns the total number of cards in the pile.
func (p *CardPile) Count() int {
	total := 0
	for _, stack := range p.piles {
		total += len(stack)
	}
	return total
}

// MarshalJSON encodes the pile as an object keyed by suit name.
func (p *CardPile) MarshalJSON() ([]byte, error) {
	out := map[string][]int{}
	for suit, stack := range p.piles {
		out[suit.String()] = stack
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a pile from an object keyed by suit name.
func (p *CardPile) UnmarshalJSON(data []byte) error {
	raw := map[string][]int{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.piles = map[Suit][]int{}
	for name, stack := range raw {
		var suit Suit
		quoted, err := json.Marshal(name)
		if err != nil {
			return err
		}
		if err := suit.UnmarshalJSON(quoted); err != nil {
			return err
		}
		p.piles[suit] = stack
	}
	return nil
}
