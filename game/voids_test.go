package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoidBits(t *testing.T) {
	var v VoidBits
	require.False(t, v.IsVoid(2, Hearts))

	v.SetIsVoid(2, Hearts)
	require.True(t, v.IsVoid(2, Hearts))
	require.False(t, v.IsVoid(2, Spades))
	require.False(t, v.IsVoid(1, Hearts))

	v.SetIsVoid(2, Hearts) // setting twice is harmless
	require.True(t, v.IsVoid(2, Hearts))

	assert.Equal(t, 1, v.CountVoids(Hearts))
	v.SetIsVoid(0, Hearts)
	assert.Equal(t, 2, v.CountVoids(Hearts))
	assert.Equal(t, 0, v.CountVoids(Clubs))
}

func TestMakePriorityList(t *testing.T) {
	t.Run("no voids keeps suit order", func(t *testing.T) {
		var v VoidBits
		var remaining CardSet
		remaining.Insert(CardFor(Two, Hearts))
		remaining.Insert(CardFor(Nine, Clubs))
		remaining.Insert(CardFor(Three, Clubs))

		list := v.MakePriorityList(0, remaining)
		require.Equal(t, []Card{CardFor(Three, Clubs), CardFor(Nine, Clubs), CardFor(Two, Hearts)}, list)
	})

	t.Run("constrained suits come first", func(t *testing.T) {
		var v VoidBits
		v.SetIsVoid(1, Hearts)
		v.SetIsVoid(2, Hearts)
		v.SetIsVoid(3, Spades)

		var remaining CardSet
		remaining.Insert(CardFor(Two, Clubs))
		remaining.Insert(CardFor(Five, Spades))
		remaining.Insert(CardFor(Two, Hearts))
		remaining.Insert(CardFor(King, Hearts))

		list := v.MakePriorityList(0, remaining)
		require.Equal(t, []Card{
			CardFor(Two, Hearts), CardFor(King, Hearts), // two voids
			CardFor(Five, Spades), // one void
			CardFor(Two, Clubs),   // unconstrained
		}, list)
	})

	t.Run("covers every remaining card", func(t *testing.T) {
		var v VoidBits
		v.SetIsVoid(0, Diamonds)
		list := v.MakePriorityList(0, FullDeck)
		require.Len(t, list, CardsPerDeck)
		var seen CardSet
		for _, c := range list {
			seen.Insert(c)
		}
		require.Equal(t, FullDeck, seen)
	})
}

func TestVerifyVoids(t *testing.T) {
	var v VoidBits
	v.SetIsVoid(1, Spades)

	hands := suitPerPlayer() // seat 1 holds diamonds only
	assert.NotPanics(t, func() { v.VerifyVoids(&hands) })

	v.SetIsVoid(2, Spades) // but seat 2 holds every spade
	assert.Panics(t, func() { v.VerifyVoids(&hands) })
}
