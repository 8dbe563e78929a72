package battleship

type ShipType uint8

const (
	ShipCarrier ShipType = iota
	ShipBattleship
	ShipCruiser
	ShipSubmarine
	ShipDestroyer
)

// All ship types in the fleet, in declaration order.
var ShipTypes = [...]ShipType{
	ShipCarrier,
	ShipBattleship,
	ShipCruiser,
	ShipSubmarine,
	ShipDestroyer,
}

var shipSizes = map[ShipType]int{
	ShipCarrier:    5,
	ShipBattleship: 4,
	ShipCruiser:    3,
	ShipSubmarine:  3,
	ShipDestroyer:  1,
}

var shipMarkers = map[ShipType]Marker{
	ShipCarrier:    MarkerCarrier,
	ShipBattleship: MarkerBattleship,
	ShipCruiser:    MarkerCruiser,
	ShipSubmarine:  MarkerSubmarine,
	ShipDestroyer:  MarkerDestroyer,
}

var shipNames = map[ShipType]string{
	ShipCarrier:    "carrier",
	ShipBattleship: "battleship",
	ShipCruiser:    "cruiser",
	ShipSubmarine:  "submarine",
	ShipDestroyer:  "destroyer",
}

// Size is the number of cells a ship of this type occupies.
func (st ShipType) Size() int {
	return shipSizes[st]
}

func (st ShipType) Marker() Marker {
	return shipMarkers[st]
}

func (st ShipType) String() string {
	name, prs := shipNames[st]
	if !prs {
		return "unknown"
	}
	return name
}

func ShipTypeFromMarker(m Marker) (ShipType, bool) {
	for _, st := range ShipTypes {
		if shipMarkers[st] == m {
			return st, true
		}
	}
	return 0, false
}
