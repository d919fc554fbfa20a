package game

import (
	"fmt"

	"lukechampine.com/uint128"
)

// HeartsState is the public history of a deal in progress: everything
// every player at the table can see. It carries no hands; GameState and
// KnowableState layer those on top.
type HeartsState struct {
	dealIndex     uint128.Uint128
	nextPlay      int // number of cards played so far, 0..52
	lead          int // player who led the current trick
	trickSuit     Suit
	plays         [NumPlayers]Card // cards of the current trick
	score         [NumPlayers]int
	pointTricks   [NumPlayers]int // tricks-with-points won per player
	pointsPlayed  int
	unplayedCards CardSet
	voids         VoidBits

	// Trick-win tracker, armed by TrackTrickWinner. The counter is
	// bumped exactly once, when trick resolution at trackAtPlay names
	// trackPlayer the winner.
	trackAtPlay int
	trackPlayer int
	trackWins   *int
}

func NewHeartsState(dealIndex uint128.Uint128) HeartsState {
	return HeartsState{
		dealIndex:     dealIndex,
		trickSuit:     SuitUnknown,
		unplayedCards: FullDeck,
		trackAtPlay:   -1,
		trackPlayer:   -1,
	}
}

func (hs *HeartsState) DealIndex() uint128.Uint128 { return hs.dealIndex }

func (hs *HeartsState) PlayNumber() int { return hs.nextPlay }

func (hs *HeartsState) PlayInTrick() int { return hs.nextPlay % NumPlayers }

func (hs *HeartsState) PlayerLeadingTrick() int { return hs.lead }

func (hs *HeartsState) CurrentPlayer() int {
	return (hs.lead + hs.PlayInTrick()) % NumPlayers
}

func (hs *HeartsState) Done() bool { return hs.nextPlay == CardsPerDeck }

func (hs *HeartsState) TrickSuit() Suit { return hs.trickSuit }

// GetTrickPlay returns the i-th card of the current trick. Only indices
// below PlayInTrick() are meaningful.
func (hs *HeartsState) GetTrickPlay(i int) Card { return hs.plays[i] }

func (hs *HeartsState) PointsPlayed() int { return hs.pointsPlayed }

func (hs *HeartsState) GetScoreFor(player int) int { return hs.score[player] }

func (hs *HeartsState) PointTricksFor(player int) int { return hs.pointTricks[player] }

func (hs *HeartsState) UnplayedCards() CardSet { return hs.unplayedCards }

func (hs *HeartsState) Voids() VoidBits { return hs.voids }

func (hs *HeartsState) SetIsVoid(player int, suit Suit) { hs.voids.SetIsVoid(player, suit) }

func (hs *HeartsState) IsVoid(player int, suit Suit) bool { return hs.voids.IsVoid(player, suit) }

func (hs *HeartsState) UnplayedCardsNotInHand(myHand CardSet) CardSet {
	return hs.unplayedCards.Subtract(myHand)
}

func (hs *HeartsState) MakePriorityList(player int, remaining CardSet) []Card {
	return hs.voids.MakePriorityList(player, remaining)
}

// PointsSplit reports whether more than one player has taken points.
func (hs *HeartsState) PointsSplit() bool {
	playersWithPoints := 0
	for p := 0; p < NumPlayers; p++ {
		if hs.score[p] != 0 {
			playersWithPoints++
		}
	}
	return playersWithPoints > 1
}

// setLead positions the opening leader. Only valid before any play.
func (hs *HeartsState) setLead(player int) {
	if hs.nextPlay != 0 {
		panic("setting lead after play has started")
	}
	hs.lead = player
}

// legalPlaysFrom computes the legal plays for the current player given
// their hand. Never empty.
func (hs *HeartsState) legalPlaysFrom(hand CardSet) CardSet {
	if hs.nextPlay == 0 {
		if hand.FirstCard() != TwoOfClubs {
			panic("opening hand does not hold the two of clubs")
		}
		var choices CardSet
		choices.Insert(TwoOfClubs)
		return choices
	}

	var choices CardSet
	if hs.PlayInTrick() == 0 {
		// Leading. Until points have been played, point cards may not lead.
		if hs.pointsPlayed == 0 {
			choices = hand.NonPointCards()
		} else {
			choices = hand
		}
	} else {
		// Following. With any card of the trick suit, only those are legal.
		choices = hand.CardsWithSuit(hs.trickSuit)
	}

	// Either path can come up empty (hand is all point cards, or the
	// player is void); then the whole hand is legal.
	if choices.IsEmpty() {
		choices = hand
	}

	if hs.pointsPlayed == TotalPoints {
		// No points remain, so every legal card leads to the same outcome.
		// Collapse to the lowest to prune the rollout fan-out.
		var single CardSet
		single.Insert(choices.FirstCard())
		choices = single
	}

	if choices.IsEmpty() {
		panic("no legal plays")
	}
	return choices
}

// applyPlay records the current player playing card, resolving the trick
// when it is the fourth card. Hand bookkeeping is the caller's job.
func (hs *HeartsState) applyPlay(card Card) {
	player := hs.CurrentPlayer()
	playInTrick := hs.PlayInTrick()

	if playInTrick == 0 {
		hs.trickSuit = SuitOf(card)
	} else if SuitOf(card) != hs.trickSuit {
		// Off suit: this player is now known void in the trick suit.
		hs.voids.SetIsVoid(player, hs.trickSuit)
	}

	hs.plays[playInTrick] = card
	hs.unplayedCards.Remove(card)

	if playInTrick == NumPlayers-1 {
		winner := hs.trickWinner()
		points := hs.scoreTrick()
		hs.addToScoreFor(winner, points)
		hs.nextPlay++
		hs.trickSuit = SuitUnknown
		hs.lead = winner
	} else {
		hs.nextPlay++
	}
}

// trickWinner names the player who contributed the highest card of the
// trick suit. Must be called with all four cards on the table, before
// the play number advances.
func (hs *HeartsState) trickWinner() int {
	if hs.nextPlay%NumPlayers != NumPlayers-1 {
		panic("trick winner queried before trick complete")
	}
	winner := 0
	high := RankOf(hs.plays[0])
	for i := 1; i < NumPlayers; i++ {
		if SuitOf(hs.plays[i]) == hs.trickSuit && high < RankOf(hs.plays[i]) {
			high = RankOf(hs.plays[i])
			winner = i
		}
	}
	winner = (winner + hs.lead) % NumPlayers

	if hs.trackWins != nil && hs.nextPlay == hs.trackAtPlay && hs.trackPlayer == winner {
		*hs.trackWins++
	}
	return winner
}

func (hs *HeartsState) scoreTrick() int {
	points := 0
	for i := 0; i < NumPlayers; i++ {
		points += PointsFor(hs.plays[i])
	}
	hs.pointsPlayed += points
	return points
}

func (hs *HeartsState) addToScoreFor(player, points int) {
	if points != 0 {
		hs.score[player] += points
		hs.pointTricks[player]++
	}
}

// ExpectedHandSize is 13 minus the number of plays player has made: the
// number of cards the play history says they still hold.
func (hs *HeartsState) ExpectedHandSize(player int) int {
	made := hs.nextPlay / NumPlayers
	if (player-hs.lead+NumPlayers)%NumPlayers < hs.PlayInTrick() {
		made++
	}
	return CardsPerHand - made
}

// TrackTrickWinner arms the trick-win tracker for the current player and
// the play at which the present trick completes. A nil counter disarms it.
func (hs *HeartsState) TrackTrickWinner(counter *int) {
	if counter == nil {
		hs.trackWins = nil
		hs.trackPlayer = -1
		hs.trackAtPlay = -1
		return
	}
	hs.trackWins = counter
	hs.trackPlayer = hs.CurrentPlayer()
	// The trick completes at the play whose bottom two bits are set.
	hs.trackAtPlay = hs.nextPlay | (NumPlayers - 1)
}

// HighCardOnTable returns the highest trick-suit card played so far in
// the current trick. Traps when leading, as no card is on the table.
func (hs *HeartsState) HighCardOnTable() Card {
	if hs.PlayInTrick() == 0 {
		panic("no cards on table")
	}
	high := RankOf(hs.plays[0])
	for i := 1; i < hs.PlayInTrick(); i++ {
		if SuitOf(hs.plays[i]) == hs.trickSuit && high < RankOf(hs.plays[i]) {
			high = RankOf(hs.plays[i])
		}
	}
	return CardFor(high, hs.trickSuit)
}

// MightCardTakeTrick estimates whether playing card from myHand could win
// the present trick.
func (hs *HeartsState) MightCardTakeTrick(card Card, myHand CardSet) bool {
	if hs.PlayInTrick() == 0 {
		// A lead can usually take the trick, unless every unplayed card
		// of the suit held outside this hand outranks it.
		others := hs.UnplayedCardsNotInHand(myHand).CardsWithSuit(SuitOf(card))
		return others.IsEmpty() || card > others.FirstCard()
	}
	if SuitOf(card) != hs.trickSuit {
		return false
	}
	return RankOf(card) > RankOf(hs.HighCardOnTable())
}

// CheckForShootTheMoon classifies the finished deal's outcome.
func (hs *HeartsState) CheckForShootTheMoon() GameOutcome {
	if !hs.Done() {
		panic("outcome queried before deal complete")
	}
	var outcome GameOutcome
	outcome.Set(hs.pointTricks, hs.score)
	return outcome
}

// VerifyHeartsState traps on any violated bookkeeping invariant. Cheap
// enough for tests to call after every mutation; outside tests it runs
// once per deal, when GameStateFromHands seats the hands.
func (hs *HeartsState) VerifyHeartsState() {
	if hs.nextPlay > CardsPerDeck {
		panic(fmt.Sprintf("play number out of range: %d", hs.nextPlay))
	}
	if hs.lead < 0 || hs.lead >= NumPlayers {
		panic(fmt.Sprintf("lead player out of range: %d", hs.lead))
	}
	if hs.pointsPlayed > TotalPoints {
		panic(fmt.Sprintf("points played out of range: %d", hs.pointsPlayed))
	}
	if got := hs.unplayedCards.Size(); got != CardsPerDeck-hs.nextPlay {
		panic(fmt.Sprintf("unplayed card count %d does not match play number %d", got, hs.nextPlay))
	}

	if hs.PlayInTrick() == 0 {
		if hs.trickSuit != SuitUnknown {
			panic("trick suit set with no cards on table")
		}
	} else {
		if hs.trickSuit != SuitOf(hs.plays[0]) {
			panic("trick suit does not match the trick's first card")
		}
	}

	// Points accounting: cards out of completed tricks carry exactly
	// pointsPlayed, and every point is on some player's score.
	played := FullDeck.Subtract(hs.unplayedCards)
	for i := 0; i < hs.PlayInTrick(); i++ {
		played.Remove(hs.plays[i])
	}
	sum := 0
	for _, c := range played.Cards() {
		sum += PointsFor(c)
	}
	if sum != hs.pointsPlayed {
		panic(fmt.Sprintf("points played %d but completed tricks carry %d", hs.pointsPlayed, sum))
	}
	total := 0
	for p := 0; p < NumPlayers; p++ {
		total += hs.score[p]
	}
	if total != hs.pointsPlayed {
		panic(fmt.Sprintf("scores sum to %d, points played %d", total, hs.pointsPlayed))
	}
}
