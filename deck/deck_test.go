package deck

import (
	"testing"

	utils "github.com/minaorangina/hanabi/internal"
)

func countBySuitAndNumber(d Deck) map[Card]int {
	counts := map[Card]int{}
	for _, c := range d {
		counts[c]++
	}
	return counts
}

func TestNewDeck(t *testing.T) {
	wantPerSuit := map[int]int{1: 3, 2: 2, 3: 2, 4: 2, 5: 1}

	t.Run("regular deck has 50 cards in the fixed multiset", func(t *testing.T) {
		d := New(Regular)
		utils.AssertEqual(t, len(d), 50)

		counts := countBySuitAndNumber(d)
		for _, suit := range Suits(Regular) {
			for number, want := range wantPerSuit {
				utils.AssertEqual(t, counts[NewCard(suit, number)], want)
			}
		}
	})

	t.Run("advanced deck adds the multicolor suit", func(t *testing.T) {
		d := New(Advanced)
		utils.AssertEqual(t, len(d), 60)

		counts := countBySuitAndNumber(d)
		for number, want := range wantPerSuit {
			utils.AssertEqual(t, counts[NewCard(Multicolor, number)], want)
		}
	})

	t.Run("shuffling preserves the multiset", func(t *testing.T) {
		d := New(Regular)
		before := countBySuitAndNumber(d)
		d.Shuffle()
		utils.AssertDeepEqual(t, countBySuitAndNumber(d), before)
	})
}

func TestDraw(t *testing.T) {
	t.Run("consumes from the front", func(t *testing.T) {
		d := Deck{NewCard(Red, 1), NewCard(Blue, 2)}

		card, err := d.Draw()
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, card, NewCard(Red, 1))
		utils.AssertEqual(t, len(d), 1)

		card, err = d.Draw()
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, card, NewCard(Blue, 2))
	})

	t.Run("empty deck errors", func(t *testing.T) {
		d := Deck{}
		_, err := d.Draw()
		utils.AssertErrorIs(t, err, ErrEmptyDeck)
	})
}
