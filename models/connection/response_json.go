package connection

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

// Hit and Sink mirror the form encoded body of the
// HTTP attack response.
type RespAttack struct {
	X              int    `json:"x"`
	Y              int    `json:"y"`
	Outcome        uint8  `json:"outcome"`
	Hit            bool   `json:"hit"`
	Sink           string `json:"sink,omitempty"`
	FleetDestroyed bool   `json:"fleet_destroyed,omitempty"`
}

type RespOpponentBoard struct {
	Rows []string `json:"rows"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
