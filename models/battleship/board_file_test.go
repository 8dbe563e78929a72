package battleship

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

const testLayout = `CCCCC_____
BBBB______
RRR_______
SSS_______
D_________
__________
__________
__________
__________
__________`

func TestParseLayout(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		expectedErr error
	}{
		{name: "valid layout", text: testLayout},
		{name: "trailing newline", text: testLayout + "\n"},
		{name: "windows line endings", text: strings.ReplaceAll(testLayout, "\n", "\r\n")},
		{name: "nine rows", text: strings.Join(strings.Split(testLayout, "\n")[:9], "\n"), expectedErr: cerr.ErrMalformedBoard},
		{name: "eleven rows", text: testLayout + "\n__________", expectedErr: cerr.ErrMalformedBoard},
		{name: "short row", text: strings.Replace(testLayout, "D_________", "D________", 1), expectedErr: cerr.ErrMalformedBoard},
		{name: "long row", text: strings.Replace(testLayout, "D_________", "D__________", 1), expectedErr: cerr.ErrMalformedBoard},
		{name: "hit marker in layout", text: strings.Replace(testLayout, "D_________", "X_________", 1), expectedErr: cerr.ErrMalformedBoard},
		{name: "unknown char", text: strings.Replace(testLayout, "D_________", "Z_________", 1), expectedErr: cerr.ErrMalformedBoard},
		{name: "empty", text: "", expectedErr: cerr.ErrMalformedBoard},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			layout, err := ParseLayout(test.text)
			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected error: %v\t got: %v", test.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if layout[0][0] != MarkerCarrier || layout[4][0] != MarkerDestroyer || layout[9][9] != MarkerWater {
				t.Fatalf("unexpected layout:\n%s", layout)
			}
		})
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	layout, err := ParseLayout(testLayout)
	if err != nil {
		t.Fatal(err)
	}

	if layout.String() != testLayout {
		t.Fatalf("expected:\n%s\ngot:\n%s", testLayout, layout.String())
	}

	reloaded, err := ParseLayout(layout.String())
	if err != nil {
		t.Fatal(err)
	}
	if reloaded != layout {
		t.Fatal("reloaded layout differs from the original")
	}
}

func TestSaveAndLoadBoard(t *testing.T) {
	layout, err := ParseLayout(testLayout)
	if err != nil {
		t.Fatal(err)
	}
	board, err := NewBoard(layout)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "board.txt")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := SaveBoard(board, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadBoardFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Layout() != board.Layout() {
		t.Fatal("loaded layout differs from saved layout")
	}
}

func TestLoadBoardFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadBoardFromFile(filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, cerr.ErrBoardFileNotFound) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrBoardFileNotFound, err)
	}
	if errors.Is(err, cerr.ErrMalformedBoard) {
		t.Fatal("missing file must not be reported as malformed")
	}

	malformed := filepath.Join(dir, "malformed.txt")
	if err := os.WriteFile(malformed, []byte("___\n___"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadBoardFromFile(malformed)
	if !errors.Is(err, cerr.ErrMalformedBoard) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrMalformedBoard, err)
	}
}
