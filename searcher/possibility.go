package searcher

import (
	"fmt"

	"hearts/game"
	"lukechampine.com/uint128"
)

// PossibilityAnalyzer enumerates every assignment of the unseen cards to
// the three opponent hands that is consistent with the hand sizes and the
// void table. It exposes the exact 128-bit count and an index -> hands
// bijection, so the searcher samples hidden worlds without rejection.
//
// The enumeration is a mixed radix over the void-aware priority ordering:
// cards group by suit, most-constrained suits first, and within a group a
// distribution of counts across the opponents is followed by a ranked
// card-to-opponent sequence. One analyzer is built per decision, is
// read-only afterwards, and may be shared across rollout workers.
type PossibilityAnalyzer struct {
	player    int
	opponents [3]int
	caps      [3]int
	groups    []suitGroup

	// counts[gi][capsKey] is the number of consistent assignments of
	// groups gi.. when the opponents can still take capsKey cards.
	counts [][]uint128.Uint128
	total  uint128.Uint128
}

type suitGroup struct {
	suit     game.Suit
	cards    []game.Card
	eligible [3]bool
}

// capStride indexes capacity triples; each capacity is at most 13.
const capStride = game.CardsPerHand + 1

func capsKey(caps [3]int) int {
	return (caps[0]*capStride+caps[1])*capStride + caps[2]
}

func NewPossibilityAnalyzer(ks *game.KnowableState) *PossibilityAnalyzer {
	a := &PossibilityAnalyzer{player: ks.CurrentPlayer()}

	slot := 0
	for p := 0; p < game.NumPlayers; p++ {
		if p == a.player {
			continue
		}
		a.opponents[slot] = p
		a.caps[slot] = ks.ExpectedHandSize(p)
		slot++
	}

	unknown := ks.UnplayedCardsNotInHand(ks.CurrentPlayersHand())
	if unknown.Size() != a.caps[0]+a.caps[1]+a.caps[2] {
		panic(fmt.Sprintf("%d unseen cards for %d open slots",
			unknown.Size(), a.caps[0]+a.caps[1]+a.caps[2]))
	}

	a.buildGroups(ks, unknown)
	a.buildCounts()
	return a
}

// buildGroups splits the unseen cards into suit groups, ordered the way
// the priority list orders them.
func (a *PossibilityAnalyzer) buildGroups(ks *game.KnowableState, unknown game.CardSet) {
	prio := ks.MakePriorityList(ks.CurrentPlayer(), unknown)
	for _, c := range prio {
		s := game.SuitOf(c)
		if n := len(a.groups); n == 0 || a.groups[n-1].suit != s {
			g := suitGroup{suit: s}
			for slot, p := range a.opponents {
				g.eligible[slot] = !ks.IsVoid(p, s)
			}
			a.groups = append(a.groups, g)
		}
		g := &a.groups[len(a.groups)-1]
		g.cards = append(g.cards, c)
	}
}

// eachDist enumerates the ways to split the group's cards across the
// opponents: k per slot, zero for voided slots, within capacities. The
// callback gets the multinomial count of card sequences for that split;
// returning true stops the walk. The order here is the indexing order.
func (g *suitGroup) eachDist(caps [3]int, f func(k [3]int, ways uint128.Uint128) bool) {
	n := len(g.cards)
	max := func(slot int) int {
		if !g.eligible[slot] {
			return 0
		}
		return caps[slot]
	}
	for k0 := 0; k0 <= n && k0 <= max(0); k0++ {
		for k1 := 0; k0+k1 <= n && k1 <= max(1); k1++ {
			k2 := n - k0 - k1
			if k2 > max(2) {
				continue
			}
			ways := game.Binomial(n, k0).Mul(game.Binomial(n-k0, k1))
			if f([3]int{k0, k1, k2}, ways) {
				return
			}
		}
	}
}

// buildCounts fills the assignment-count table bottom up.
func (a *PossibilityAnalyzer) buildCounts() {
	numGroups := len(a.groups)
	a.counts = make([][]uint128.Uint128, numGroups+1)
	for gi := range a.counts {
		a.counts[gi] = make([]uint128.Uint128, capStride*capStride*capStride)
	}
	a.counts[numGroups][capsKey([3]int{})] = uint128.From64(1)

	for gi := numGroups - 1; gi >= 0; gi-- {
		g := &a.groups[gi]
		for c0 := 0; c0 <= a.caps[0]; c0++ {
			for c1 := 0; c1 <= a.caps[1]; c1++ {
				for c2 := 0; c2 <= a.caps[2]; c2++ {
					caps := [3]int{c0, c1, c2}
					var sum uint128.Uint128
					g.eachDist(caps, func(k [3]int, ways uint128.Uint128) bool {
						rest := a.counts[gi+1][capsKey(sub(caps, k))]
						if !rest.IsZero() {
							sum = sum.Add(ways.Mul(rest))
						}
						return false
					})
					a.counts[gi][capsKey(caps)] = sum
				}
			}
		}
	}

	a.total = a.counts[0][capsKey(a.caps)]
	if a.total.IsZero() {
		panic("no consistent assignment of the unseen cards")
	}
}

func sub(caps, k [3]int) [3]int {
	return [3]int{caps[0] - k[0], caps[1] - k[1], caps[2] - k[2]}
}

// Possibilities returns the exact number of consistent hidden deals.
func (a *PossibilityAnalyzer) Possibilities() uint128.Uint128 { return a.total }

// ActualizePossibility fills the three opponent hands with the index-th
// consistent assignment. The current player's seat is left untouched.
// Indexes at or past Possibilities() trap.
func (a *PossibilityAnalyzer) ActualizePossibility(index uint128.Uint128, hands *game.Hands) {
	if index.Cmp(a.total) >= 0 {
		panic(fmt.Sprintf("possibility index %s out of range", game.HexString(index, 0)))
	}

	caps := a.caps
	for gi := range a.groups {
		g := &a.groups[gi]
		located := false
		g.eachDist(caps, func(k [3]int, ways uint128.Uint128) bool {
			rest := a.counts[gi+1][capsKey(sub(caps, k))]
			if rest.IsZero() {
				return false
			}
			block := ways.Mul(rest)
			if index.Cmp(block) >= 0 {
				index = index.Sub(block)
				return false
			}
			seq, remainder := index.QuoRem(rest)
			a.dealGroup(seq, g, k, hands)
			caps = sub(caps, k)
			index = remainder
			located = true
			return true
		})
		if !located {
			panic("possibility index not located in any distribution block")
		}
	}
}

// dealGroup unranks the seq-th card-to-opponent sequence with the given
// per-slot counts, inserting the group's cards into the hands.
func (a *PossibilityAnalyzer) dealGroup(seq uint128.Uint128, g *suitGroup, k [3]int, hands *game.Hands) {
	rem := k
	for pos, card := range g.cards {
		left := len(g.cards) - pos - 1
		placed := false
		for slot := 0; slot < 3; slot++ {
			if rem[slot] == 0 {
				continue
			}
			rem[slot]--
			ways := multinomial(left, rem)
			if seq.Cmp(ways) < 0 {
				hands[a.opponents[slot]].Insert(card)
				placed = true
				break
			}
			seq = seq.Sub(ways)
			rem[slot]++
		}
		if !placed {
			panic("sequence rank exhausted while dealing group")
		}
	}
}

func multinomial(n int, k [3]int) uint128.Uint128 {
	return game.Binomial(n, k[0]).Mul(game.Binomial(n-k[0], k[1]))
}

// ExpectedDistribution returns, per card and seat, the probability that
// the seat holds the card across all consistent deals. The current
// player's cards are certain; played cards are nowhere.
func (a *PossibilityAnalyzer) ExpectedDistribution(ks *game.KnowableState) [game.CardsPerDeck][game.NumPlayers]float64 {
	var probs [game.CardsPerDeck][game.NumPlayers]float64
	for _, c := range ks.CurrentPlayersHand().Cards() {
		probs[c][a.player] = 1
	}

	totalF := game.Float128(a.total)

	// Forward weights over capacity states, by group.
	forward := make([]map[int]float64, len(a.groups)+1)
	for gi := range forward {
		forward[gi] = make(map[int]float64)
	}
	forward[0][capsKey(a.caps)] = 1

	for gi := range a.groups {
		g := &a.groups[gi]
		n := len(g.cards)
		var expected [3]float64
		for key, weight := range forward[gi] {
			caps := unkey(key)
			g.eachDist(caps, func(k [3]int, ways uint128.Uint128) bool {
				restKey := capsKey(sub(caps, k))
				rest := a.counts[gi+1][restKey]
				if rest.IsZero() {
					return false
				}
				w := weight * game.Float128(ways)
				forward[gi+1][restKey] += w
				paths := w * game.Float128(rest)
				for slot := 0; slot < 3; slot++ {
					expected[slot] += paths * float64(k[slot])
				}
				return false
			})
		}
		for slot := 0; slot < 3; slot++ {
			p := expected[slot] / (totalF * float64(n))
			for _, c := range g.cards {
				probs[c][a.opponents[slot]] = p
			}
		}
	}
	return probs
}

func unkey(key int) [3]int {
	return [3]int{key / (capStride * capStride), (key / capStride) % capStride, key % capStride}
}
