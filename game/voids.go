package game

import "fmt"

// VoidBits records which players are known to hold no cards of a suit.
// One bit per player x suit. Bits are only ever set during a deal, never
// cleared: a void, once observed, holds until the deal ends.
type VoidBits uint16

func (v *VoidBits) SetIsVoid(player int, suit Suit) {
	*v |= 1 << (uint(player)*NumSuits + uint(suit))
}

func (v VoidBits) IsVoid(player int, suit Suit) bool {
	return v&(1<<(uint(player)*NumSuits+uint(suit))) != 0
}

// CountVoids returns how many of the four players are void in suit.
func (v VoidBits) CountVoids(suit Suit) int {
	n := 0
	for p := 0; p < NumPlayers; p++ {
		if v.IsVoid(p, suit) {
			n++
		}
	}
	return n
}

// MakePriorityList orders the remaining cards for dealing to the seats
// other than player: cards whose suit is constrained by the most opponent
// voids come first; ties keep ascending card order. The possibility
// analyzer enumerates deals in this order, which is what makes the
// index <-> assignment mapping deterministic.
func (v VoidBits) MakePriorityList(player int, remaining CardSet) []Card {
	voids := func(s Suit) int {
		n := 0
		for p := 0; p < NumPlayers; p++ {
			if p != player && v.IsVoid(p, s) {
				n++
			}
		}
		return n
	}

	bySuit := [NumSuits]CardSet{}
	for s := Suit(0); s < NumSuits; s++ {
		bySuit[s] = remaining.CardsWithSuit(s)
	}

	order := make([]Suit, 0, NumSuits)
	for s := Suit(0); s < NumSuits; s++ {
		order = append(order, s)
	}
	// Insertion sort over four suits: most voids first, then suit index.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0; j-- {
			a, b := order[j-1], order[j]
			if voids(b) > voids(a) {
				order[j-1], order[j] = b, a
			}
		}
	}

	list := make([]Card, 0, remaining.Size())
	for _, s := range order {
		list = append(list, bySuit[s].Cards()...)
	}
	return list
}

// VerifyVoids traps if any actualized hand holds a card of a suit its
// seat is recorded void in. Called after every actualization as a
// correctness backstop on the analyzer.
func (v VoidBits) VerifyVoids(hands *Hands) {
	for p := 0; p < NumPlayers; p++ {
		for s := Suit(0); s < NumSuits; s++ {
			if v.IsVoid(p, s) && !hands[p].CardsWithSuit(s).IsEmpty() {
				panic(fmt.Sprintf("player %d is void in %s but was dealt %s",
					p, s, hands[p].CardsWithSuit(s)))
			}
		}
	}
}
