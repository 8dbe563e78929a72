package connection

const (
	CodeSessionID uint8 = iota
	CodeAttack
	CodeOpponentBoard

	// Sent to every other open session after an attack
	// changed the board, whatever transport it came from
	CodeAttackEvent

	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}
