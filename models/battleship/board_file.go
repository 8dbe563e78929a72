package battleship

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

const boardFilePerm fs.FileMode = 0o644

// ParseLayout reads a layout in its textual form: GridSize lines
// of GridSize characters each. A single trailing newline is accepted.
func ParseLayout(text string) (Grid, error) {
	var layout Grid

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	rows := strings.Split(text, "\n")
	if len(rows) != GridSize {
		return layout, cerr.ErrInvalidRowCount(len(rows))
	}

	for x, row := range rows {
		if len(row) != GridSize {
			return layout, cerr.ErrInvalidRowWidth(x, len(row))
		}

		for y := 0; y < GridSize; y++ {
			m := Marker(row[y])
			if !m.IsLayoutMarker() {
				return layout, cerr.ErrInvalidBoardChar(row[y], x, y)
			}
			layout[x][y] = m
		}
	}

	return layout, nil
}

func LoadBoardFromFile(path string) (*Board, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cerr.ErrBoardFileMissing(path, err)
		}
		return nil, err
	}

	layout, err := ParseLayout(string(contents))
	if err != nil {
		return nil, err
	}

	return NewBoard(layout)
}

// SaveBoard writes the ship layout of the board, replacing any existing file.
func SaveBoard(board *Board, path string) error {
	return os.WriteFile(path, []byte(board.Layout().String()), boardFilePerm)
}
