package deck

import "sort"

// Hand is a player's set of cards. Insertion order is not meaningful;
// callers that need a display order should call Sorted().
type Hand []Card

func (h Hand) Len() int {
	return len(h)
}

func (h Hand) Less(i, j int) bool {
	return h[i].Less(h[j])
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Sorted returns a copy of h in the stable display order (suit, then rank).
func (h Hand) Sorted() Hand {
	h2 := h.Clone()
	sort.Sort(h2)
	return h2
}

// Add appends a card to the hand.
func (h *Hand) Add(card Card) {
	*h = append(*h, card)
}

// Has returns true if the hand contains the specified card.
func (h Hand) Has(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// HasSuit returns true if the hand contains any card of the given suit.
func (h Hand) HasSuit(suit Suit) bool {
	for _, c := range h {
		if c.Suit == suit {
			return true
		}
	}

	return false
}

// Remove removes the first occurrence of card from the hand.
// It reports whether a card was actually removed.
func (h *Hand) Remove(card Card) bool {
	for i, c := range *h {
		if c == card {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return true
		}
	}

	return false
}

func (h Hand) String() string {
	sorted := h.Sorted()
	s := ""
	for _, c := range sorted {
		s += c.String()
	}

	return s
}

// Clone returns a shallow copy of the hand (cards are value types, so this
// is a full, independent copy).
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
