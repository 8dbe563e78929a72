package connection

type ReqAttack struct {
	X int `json:"x"`
	Y int `json:"y"`
}
