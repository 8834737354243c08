package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/tictactoe"
)

// clientErrors - failures caused by the request itself.
var clientErrors = []error{
	apperror.ErrInvalidCoordinates,
	apperror.ErrInvalidPlayer,
	apperror.ErrWrongFirstPlayer,
	apperror.ErrOutOfTurn,
	apperror.ErrGameAlreadyEnded,
	apperror.ErrCellOccupied,
	apperror.ErrOutOfRange,
	apperror.ErrInvalidGameID,
}

type playRequest struct {
	ID     string `json:"id"`
	Player string `json:"player"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

type gameResponse struct {
	ID         string `json:"id"`
	NextPlayer string `json:"nextPlayer"`
	EndGame    bool   `json:"endGame"`
}

type gameStatusResponse struct {
	gameResponse
	Board  [entity.Size][entity.Size]string `json:"board"`
	Winner string                           `json:"winner,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleNewGame")

	log.Info("Create new Tic Tac Toe Game")

	game, err := that.gameManager.CreateGame(r.Context())
	if err != nil {
		that.respondError(w, err)
		return
	}

	log.Info("Game created", "game_id", game.ID)

	respondJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handlePlay")

	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	log.Info("Play game", "game_id", req.ID, "player", req.Player, "row", req.Row, "col", req.Col)

	move, err := parseMove(req.Player, req.Row, req.Col)
	if err != nil {
		that.respondError(w, err)
		return
	}

	game, err := that.gameManager.Play(r.Context(), req.ID, move)
	if err != nil {
		that.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameManager.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondError(w, err)
		return
	}

	resp := gameStatusResponse{
		gameResponse: newGameResponse(game),
	}

	for i, cell := range game.Board {
		resp.Board[i/entity.Size][i%entity.Size] = cell.String()
	}

	if game.Ended {
		resp.Winner = tictactoe.WinnerName(game.Board)
	}

	respondJSON(w, http.StatusOK, resp)
}

// parseMove - coordinates are checked before the player code.
func parseMove(player string, row, col int) (entity.Move, error) {
	if !entity.InRange(row, col) {
		return entity.Move{}, apperror.New(apperror.ErrInvalidCoordinates, apperror.MsgInvalidCoordinates)
	}

	marker, err := entity.ParsePlayer(player)
	if err != nil {
		return entity.Move{}, err
	}

	return entity.Move{Player: marker, Row: row, Col: col}, nil
}

func newGameResponse(game *entity.Game) gameResponse {
	return gameResponse{
		ID:         game.ID,
		NextPlayer: game.NextPlayerDescription(),
		EndGame:    game.Ended,
	}
}

func (that *Server) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		respondJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	respondJSON(w, status, errorResponse{Error: apperror.Message(err)})
}

func statusFor(err error) int {
	if errors.Is(err, apperror.ErrGameNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, apperror.ErrConcurrentUpdate) {
		return http.StatusConflict
	}

	for _, kind := range clientErrors {
		if errors.Is(err, kind) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
