package api

import (
	"encoding/json"
	"log"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
	mc "github.com/saeidalz13/battleship-board/models/connection"
)

// HandleWs upgrades the request to a websocket session. The session
// can attack and fetch the opponent board, and receives an event
// for every attack made by anyone else.
func (s *Server) HandleWs(req *Request) error {
	conn, err := s.upgrader.Upgrade(req.ResponseWriter(), req.HttpRequest(), nil)
	// Upgrade replies to the client on failure too
	req.markSent()
	if err != nil {
		log.Println(err)
		return nil
	}

	log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
	s.processSessionRequests(s.sessionManager.GenerateNewSession(conn))
	return nil
}

func (s *Server) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()

	defer func() {
		if session.Conn() != nil {
			session.Conn().Close()
		}
		s.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := s.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := s.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := s.sessionManager.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = s.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {
		case mc.CodeAttack:
			respMsg := s.handleWsAttack(sessionId, payload)
			if err := s.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeOpponentBoard:
			respMsg := mc.NewMessage[mc.RespOpponentBoard](mc.CodeOpponentBoard)
			respMsg.AddPayload(mc.RespOpponentBoard{Rows: s.board.OpponentView().Rows()})
			if err := s.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := s.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

func (s *Server) handleWsAttack(sessionId string, payload []byte) mc.Message[mc.RespAttack] {
	var reqAttack mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(payload, &reqAttack); err != nil {
		return mc.NewErrMessage[mc.RespAttack](mc.CodeAttack, err, cerr.ConstErrAttackFailed)
	}

	coords := mb.NewCoordinates(reqAttack.Payload.X, reqAttack.Payload.Y)
	result := s.gameHandler.attack(sessionId, coords)

	switch result.Outcome {
	case mb.AttackOutcomeOutOfBounds:
		return mc.NewErrMessage[mc.RespAttack](mc.CodeAttack, cerr.ErrXorYOutOfGridBound(coords.X, coords.Y), cerr.ConstErrAttackFailed)

	case mb.AttackOutcomeAlreadyHit:
		return mc.NewErrMessage[mc.RespAttack](mc.CodeAttack, cerr.ErrAttackPositionAlreadyHit(coords.X, coords.Y), cerr.ConstErrAttackFailed)
	}

	respMsg := mc.NewMessage[mc.RespAttack](mc.CodeAttack)
	respMsg.AddPayload(newRespAttack(coords, result))
	return respMsg
}

func newRespAttack(coords mb.Coordinates, result mb.AttackResult) mc.RespAttack {
	resp := mc.RespAttack{
		X:              coords.X,
		Y:              coords.Y,
		Outcome:        result.Outcome,
		Hit:            result.IsHit(),
		FleetDestroyed: result.FleetDestroyed,
	}
	if result.Outcome == mb.AttackOutcomeShipSunk {
		resp.Sink = string(result.Ship.Marker())
	}
	return resp
}
