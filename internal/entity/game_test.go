package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarker(t *testing.T) {
	t.Run("Opposite", func(t *testing.T) {
		assert.Equal(t, O, X.Opposite())
		assert.Equal(t, X, O.Opposite())
		assert.Equal(t, Empty, Empty.Opposite())
	})

	t.Run("Symbols", func(t *testing.T) {
		assert.Equal(t, " ", Empty.Symbol())
		assert.Equal(t, "X", X.Symbol())
		assert.Equal(t, "O", O.Symbol())
	})

	t.Run("ParsePlayer accepts only X and O", func(t *testing.T) {
		marker, err := ParsePlayer("X")
		require.NoError(t, err)
		assert.Equal(t, X, marker)

		marker, err = ParsePlayer("O")
		require.NoError(t, err)
		assert.Equal(t, O, marker)

		for _, code := range []string{"", " ", "x", "#", "XO"} {
			_, err = ParsePlayer(code)
			require.ErrorIs(t, err, apperror.ErrInvalidPlayer)
			assert.Equal(t, apperror.MsgInvalidPlayer, err.Error())
		}
	})

	t.Run("Unknown text is rejected", func(t *testing.T) {
		var marker Marker

		err := marker.UnmarshalText([]byte("Z"))

		require.ErrorIs(t, err, apperror.ErrInvalidPlayer)
	})
}

func TestGameState_NextPlayerDescription(t *testing.T) {
	t.Run("Before the first move", func(t *testing.T) {
		// Given: a game that has not started
		state := GameState{}

		// Then: X is invited to start
		assert.Equal(t, "X can start the game", state.NextPlayerDescription())
	})

	t.Run("During the game", func(t *testing.T) {
		// Given: a game where O plays next
		state := GameState{NextPlayer: O}

		// Then: the description names the player
		assert.Equal(t, "O Player", state.NextPlayerDescription())
	})
}

func TestGame_JSON(t *testing.T) {
	// Given: a stored game with a couple of moves
	game := Game{
		ID: "123",
		GameState: GameState{
			Board:      Board{X, Empty, Empty, Empty, O, Empty, Empty, Empty, Empty},
			NextPlayer: X,
		},
	}

	// When: it goes through its persisted JSON form
	raw, err := json.Marshal(game)
	require.NoError(t, err)

	var restored Game
	require.NoError(t, json.Unmarshal(raw, &restored))

	// Then: markers are written as text and the state survives
	assert.Contains(t, string(raw), `"board":["X","","","","O","","","",""]`)
	assert.Contains(t, string(raw), `"next_player":"X"`)
	assert.Equal(t, game, restored)
}
