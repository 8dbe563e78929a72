package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackFailed = "attack operation failed"
)

var (
	ErrBoardFileNotFound = errors.New("board file not found")
	ErrMalformedBoard    = errors.New("malformed board")
	ErrNotImplemented    = errors.New("not implemented")
)

func ErrBoardFileMissing(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrBoardFileNotFound, path, err)
}

func ErrInvalidRowCount(rows int) error {
	return fmt.Errorf("%w: invalid number of rows in the board: %d", ErrMalformedBoard, rows)
}

func ErrInvalidRowWidth(row, width int) error {
	return fmt.Errorf("%w: invalid number of characters in row %d: %d", ErrMalformedBoard, row, width)
}

func ErrInvalidBoardChar(char byte, row, col int) error {
	return fmt.Errorf("%w: invalid character '%c' at row %d col %d", ErrMalformedBoard, char, row, col)
}

func ErrShipOversized(ship string, cells, size int) error {
	return fmt.Errorf("%w: %s occupies %d cells but its size is %d", ErrMalformedBoard, ship, cells, size)
}

func ErrRouteNotImplemented(method, path string) error {
	return fmt.Errorf("%w: %s %s", ErrNotImplemented, method, path)
}

func ErrMissingFormValues(keys ...string) error {
	return fmt.Errorf("request form must contain the fields: %v", keys)
}

func ErrValueNotInt(key, value string) error {
	return fmt.Errorf("the value of %s is not of type int:\t%q", key, value)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("incoming x or y is out of game grid bound\tx: %d\ty: %d", x, y)
}

func ErrAttackPositionAlreadyHit(x, y int) error {
	return fmt.Errorf("this position is already hit by the attacker in previous rounds\tx: %d\ty: %d", x, y)
}

func ErrUnknownAttackOutcome(outcome uint8) error {
	return fmt.Errorf("%s: unknown attack outcome: %d", ConstErrAttackFailed, outcome)
}

func ErrConfigKeyMissing(key string) error {
	return fmt.Errorf("config key must be set: %s", key)
}

func ErrInvalidStage(stage string) error {
	return fmt.Errorf("invalid type of development stage: %s", stage)
}
