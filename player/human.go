package player

import (
	"bufio"
	"fmt"
	"io"

	"hearts/game"
	"hearts/random"
)

// HumanPlayer is a Strategy that asks a person for the card to play. The
// prompt shows the trick in progress, the scores when points are out and
// only one player holds them ("Points split" once more than one does), and
// the hand; bad input re-prompts rather than failing.
type HumanPlayer struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHumanPlayer(in io.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (h *HumanPlayer) ChoosePlay(state *game.KnowableState, rng *random.Generator) game.Card {
	fmt.Fprintf(h.out, "Play %d\n", state.PlayNumber())

	if state.PointsPlayed() > 0 {
		if state.PointsSplit() {
			fmt.Fprintln(h.out, "Points split")
		} else {
			for i := 0; i < game.NumPlayers; i++ {
				p := (state.PlayerLeadingTrick() + i) % game.NumPlayers
				fmt.Fprintf(h.out, "%d ", state.GetScoreFor(p))
			}
			fmt.Fprintln(h.out)
		}
	}

	if state.PlayInTrick() == 0 {
		fmt.Fprintln(h.out, "You are leading the trick...")
	} else {
		for i := 0; i < state.PlayInTrick(); i++ {
			fmt.Fprintf(h.out, " %s ", state.GetTrickPlay(i))
		}
		fmt.Fprintln(h.out)
	}

	fmt.Fprintf(h.out, "Your hand: %s\n", state.CurrentPlayersHand())
	return h.getCardInput(state)
}

func (h *HumanPlayer) getCardInput(state *game.KnowableState) game.Card {
	legal := state.LegalPlays()

	for {
		fmt.Fprint(h.out, "Choose a card: ")
		if !h.in.Scan() {
			// Input closed; keep the deal running.
			choice := legal.FirstCard()
			fmt.Fprintf(h.out, "\nInput closed, playing %s\n", choice)
			return choice
		}

		choice, err := game.ParseCard(h.in.Text())
		if err != nil {
			fmt.Fprintln(h.out, err)
			continue
		}
		fmt.Fprintf(h.out, "You chose card: %s\n", choice)

		if legal.Has(choice) {
			return choice
		}
		fmt.Fprintln(h.out, "But that is not a legal play!")
	}
}
