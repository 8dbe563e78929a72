package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
)

const (
	PathOpponentBoard = "/opponent_board.html"
	PathOwnBoard      = "/own_board.html"

	FormKeyX = "x"
	FormKeyY = "y"

	contentTypeForm = "application/x-www-form-urlencoded"
)

// AttackObserver is told about every attack that changed the board.
// senderSessionId is empty for attacks that did not come from a websocket session.
type AttackObserver interface {
	OnAttack(senderSessionId string, coords mb.Coordinates, result mb.AttackResult)
}

type GameHandler struct {
	board    *mb.Board
	observer AttackObserver
}

// observer may be nil.
func NewGameHandler(board *mb.Board, observer AttackObserver) *GameHandler {
	return &GameHandler{
		board:    board,
		observer: observer,
	}
}

func (gh *GameHandler) HandleOpponentBoard(req *Request) error {
	return req.Send(http.StatusOK, gh.board.OpponentView().String())
}

func (gh *GameHandler) HandleOwnBoard(req *Request) error {
	return req.Send(http.StatusOK, gh.board.Layout().String())
}

func (gh *GameHandler) OnGet(req *Request) error {
	return req.Send(http.StatusNotFound, "")
}

// Any POST without a registered route is an attack.
func (gh *GameHandler) OnPost(req *Request) error {
	return gh.HandleAttack(req)
}

func (gh *GameHandler) HandleAttack(req *Request) error {
	if !req.HasFormValues(FormKeyX, FormKeyY) {
		return req.Send(http.StatusBadRequest, cerr.ErrMissingFormValues(FormKeyX, FormKeyY).Error())
	}

	coords, err := formCoordinates(req)
	if err != nil {
		return req.Send(http.StatusBadRequest, err.Error())
	}

	result := gh.attack("", coords)

	status, body, err := attackResponse(result)
	if err != nil {
		return err
	}

	if body != "" {
		req.SetHeader("Content-Type", contentTypeForm)
	}
	return req.Send(status, body)
}

// attack applies the attack to the board and notifies the observer
// if the board changed.
func (gh *GameHandler) attack(senderSessionId string, coords mb.Coordinates) mb.AttackResult {
	result := gh.board.Attack(coords.X, coords.Y)

	if gh.observer != nil && changesBoard(result) {
		gh.observer.OnAttack(senderSessionId, coords, result)
	}
	return result
}

func changesBoard(result mb.AttackResult) bool {
	switch result.Outcome {
	case mb.AttackOutcomeMiss, mb.AttackOutcomeShipHit, mb.AttackOutcomeShipSunk:
		return true
	default:
		return false
	}
}

func formCoordinates(req *Request) (mb.Coordinates, error) {
	values := make([]int, 0, 2)

	for _, key := range []string{FormKeyX, FormKeyY} {
		raw, _ := req.FormValue(key)
		// on overflow Atoi returns the clamped value, which is off the grid
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return mb.Coordinates{}, cerr.ErrValueNotInt(key, raw)
		}
		values = append(values, value)
	}

	return mb.NewCoordinates(values[0], values[1]), nil
}

// attackResponse maps an attack outcome to the status and
// form encoded body of the HTTP response.
func attackResponse(result mb.AttackResult) (int, string, error) {
	body := url.Values{}

	switch result.Outcome {
	case mb.AttackOutcomeOutOfBounds:
		return http.StatusNotFound, "", nil

	case mb.AttackOutcomeAlreadyHit:
		return http.StatusGone, "", nil

	case mb.AttackOutcomeMiss:
		body.Set("hit", "0")

	case mb.AttackOutcomeShipHit:
		body.Set("hit", "1")

	case mb.AttackOutcomeShipSunk:
		body.Set("hit", "1")
		body.Set("sink", string(result.Ship.Marker()))

	default:
		return http.StatusInternalServerError, "", cerr.ErrUnknownAttackOutcome(result.Outcome)
	}

	return http.StatusOK, body.Encode(), nil
}
