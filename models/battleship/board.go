package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

const (
	AttackOutcomeOutOfBounds uint8 = iota
	AttackOutcomeAlreadyHit
	AttackOutcomeMiss
	AttackOutcomeShipHit
	AttackOutcomeShipSunk
)

type AttackResult struct {
	Outcome uint8
	// Only meaningful when Outcome is AttackOutcomeShipHit or AttackOutcomeShipSunk
	Ship ShipType
	// Set on the sinking blow that leaves no ship afloat
	FleetDestroyed bool
}

func (ar AttackResult) IsHit() bool {
	return ar.Outcome == AttackOutcomeShipHit || ar.Outcome == AttackOutcomeShipSunk
}

// Board holds the ship layout of one side and every attack
// applied to it so far.
type Board struct {
	layout  Grid
	overlay Grid
	// ship types present in the layout
	fleet    []ShipType
	shipHits map[ShipType]int
	mu       sync.Mutex
}

func NewBoard(layout Grid) (*Board, error) {
	cells := make(map[ShipType]int, len(ShipTypes))

	for x := range layout {
		for y, m := range layout[x] {
			if !m.IsLayoutMarker() {
				return nil, cerr.ErrInvalidBoardChar(byte(m), x, y)
			}
			if st, ok := ShipTypeFromMarker(m); ok {
				cells[st]++
			}
		}
	}

	// More cells than the ship size would let the hit counter
	// pass the size and the ship would never count as sunk.
	for st, n := range cells {
		if n > st.Size() {
			return nil, cerr.ErrShipOversized(st.String(), n, st.Size())
		}
	}

	fleet := make([]ShipType, 0, len(cells))
	shipHits := make(map[ShipType]int, len(ShipTypes))
	for _, st := range ShipTypes {
		shipHits[st] = 0
		if cells[st] > 0 {
			fleet = append(fleet, st)
		}
	}

	return &Board{
		layout:   layout,
		fleet:    fleet,
		shipHits: shipHits,
	}, nil
}

func (b *Board) Attack(x, y int) AttackResult {
	coords := NewCoordinates(x, y)
	if !coords.InBounds() {
		return AttackResult{Outcome: AttackOutcomeOutOfBounds}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.overlay.At(coords) != MarkerNone {
		return AttackResult{Outcome: AttackOutcomeAlreadyHit}
	}

	marker := b.layout.At(coords)
	st, isShip := ShipTypeFromMarker(marker)
	if !isShip {
		b.overlay[x][y] = MarkerMiss
		return AttackResult{Outcome: AttackOutcomeMiss}
	}

	b.overlay[x][y] = marker
	b.shipHits[st]++

	if b.shipHits[st] == st.Size() {
		return AttackResult{
			Outcome:        AttackOutcomeShipSunk,
			Ship:           st,
			FleetDestroyed: b.allSunk(),
		}
	}
	return AttackResult{Outcome: AttackOutcomeShipHit, Ship: st}
}

// OpponentView renders the attack overlay the way the attacker may see it.
// Hits on a ship that is still afloat show as MarkerHit so the ship type
// stays hidden until it sinks.
func (b *Board) OpponentView() Grid {
	b.mu.Lock()
	defer b.mu.Unlock()

	view := NewWaterGrid()
	for x := range b.overlay {
		for y, m := range b.overlay[x] {
			switch m {
			case MarkerNone:
			case MarkerMiss:
				view[x][y] = MarkerMiss
			default:
				st, _ := ShipTypeFromMarker(m)
				if b.isSunk(st) {
					view[x][y] = m
				} else {
					view[x][y] = MarkerHit
				}
			}
		}
	}
	return view
}

// Layout returns a copy of the ground truth ship placement.
func (b *Board) Layout() Grid {
	return b.layout
}

func (b *Board) Hits(st ShipType) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shipHits[st]
}

func (b *Board) IsSunk(st ShipType) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.isSunk(st)
}

// AllSunk reports whether every ship present in the layout has been sunk.
// A board without any ship is never considered destroyed, and neither is
// one holding a ship with fewer cells than its size.
func (b *Board) AllSunk() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.allSunk()
}

func (b *Board) allSunk() bool {
	for _, st := range b.fleet {
		if !b.isSunk(st) {
			return false
		}
	}
	return len(b.fleet) > 0
}

func (b *Board) isSunk(st ShipType) bool {
	return b.shipHits[st] == st.Size()
}
