package game

import (
	"fmt"

	"lukechampine.com/uint128"
)

// A deal is identified by a 128-bit index into the combinatorial number
// system over all C(52,13)*C(39,13)*C(26,13) distinct ways to split the
// deck across four seats. The count is about 2^95, so indexes genuinely
// need the full 128 bits.

// TotalDeals is the number of distinct deals.
var TotalDeals = dealCounts()

// dealCounts returns, per seat, the number of deals of the remaining
// cards; element 0 is the total.
func dealCounts() [NumPlayers]uint128.Uint128 {
	var counts [NumPlayers]uint128.Uint128
	counts[NumPlayers-1] = Binomial(CardsPerHand, CardsPerHand)
	for p := NumPlayers - 2; p >= 0; p-- {
		n := CardsPerDeck - p*CardsPerHand
		counts[p] = Binomial(n, CardsPerHand).Mul(counts[p+1])
	}
	return counts
}

// DealHands unranks a deal index into the four hands.
func DealHands(index uint128.Uint128) Hands {
	if index.Cmp(TotalDeals[0]) >= 0 {
		panic(fmt.Sprintf("deal index out of range: %s", HexString(index, 0)))
	}

	remaining := FullDeck
	var hands Hands
	for p := 0; p < NumPlayers-1; p++ {
		rank, rest := index.QuoRem(TotalDeals[p+1])
		hands[p] = unrankCombination(rank, remaining, CardsPerHand)
		remaining = remaining.Subtract(hands[p])
		index = rest
	}
	hands[NumPlayers-1] = remaining
	return hands
}

// unrankCombination picks the rank-th k-subset of the set, in the
// lexicographic order of ascending card indexes.
func unrankCombination(rank uint128.Uint128, from CardSet, k int) CardSet {
	var chosen CardSet
	n := from.Size()
	for set := from; k > 0; set &= set - 1 {
		c := set.FirstCard()
		// Subsets containing c as their lowest remaining element.
		with := Binomial(n-1, k-1)
		if rank.Cmp(with) < 0 {
			chosen.Insert(c)
			k--
		} else {
			rank = rank.Sub(with)
		}
		n--
	}
	return chosen
}
