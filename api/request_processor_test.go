package api

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
	mc "github.com/saeidalz13/battleship-board/models/connection"
)

var dialer = websocket.Dialer{
	HandshakeTimeout: 5 * time.Second,
}

type wsTest[T, K any] struct {
	name string

	expectedCode uint8
	expectedErr  string

	reqPayload          T
	expectedRespPayload K
}

// dialWs connects a client and consumes the session id message.
func dialWs(t *testing.T, srvUrl string) (*websocket.Conn, string) {
	t.Helper()

	wsUrl := "ws" + strings.TrimPrefix(srvUrl, "http") + PathWs
	conn, _, err := dialer.Dial(wsUrl, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var respSessionId mc.Message[mc.RespSessionId]
	conn.SetReadDeadline(time.Now().Add(time.Second * 5))
	require.NoError(t, conn.ReadJSON(&respSessionId))
	require.Equal(t, mc.CodeSessionID, respSessionId.Code)
	require.NotEmpty(t, respSessionId.Payload.SessionID)

	return conn, respSessionId.Payload.SessionID
}

func readJSON(t *testing.T, conn *websocket.Conn, v interface{}) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(time.Second * 5))
	require.NoError(t, conn.ReadJSON(v))
}

func TestWsAttack(t *testing.T) {
	srv, _ := newTestHttpServer(t)
	conn, _ := dialWs(t, srv.URL)

	tests := []wsTest[mc.Message[mc.ReqAttack], mc.Message[mc.RespAttack]]{
		{
			name:         "sink destroyer",
			expectedCode: mc.CodeAttack,
			reqPayload:   mc.Message[mc.ReqAttack]{Code: mc.CodeAttack, Payload: mc.ReqAttack{X: 0, Y: 0}},
			expectedRespPayload: mc.Message[mc.RespAttack]{Code: mc.CodeAttack, Payload: mc.RespAttack{
				X: 0, Y: 0, Outcome: mb.AttackOutcomeShipSunk, Hit: true, Sink: "D",
			}},
		},
		{
			name:         "already hit",
			expectedCode: mc.CodeAttack,
			expectedErr:  cerr.ErrAttackPositionAlreadyHit(0, 0).Error(),
			reqPayload:   mc.Message[mc.ReqAttack]{Code: mc.CodeAttack, Payload: mc.ReqAttack{X: 0, Y: 0}},
		},
		{
			name:         "miss",
			expectedCode: mc.CodeAttack,
			reqPayload:   mc.Message[mc.ReqAttack]{Code: mc.CodeAttack, Payload: mc.ReqAttack{X: 7, Y: 7}},
			expectedRespPayload: mc.Message[mc.RespAttack]{Code: mc.CodeAttack, Payload: mc.RespAttack{
				X: 7, Y: 7, Outcome: mb.AttackOutcomeMiss,
			}},
		},
		{
			name:         "carrier hit",
			expectedCode: mc.CodeAttack,
			reqPayload:   mc.Message[mc.ReqAttack]{Code: mc.CodeAttack, Payload: mc.ReqAttack{X: 2, Y: 3}},
			expectedRespPayload: mc.Message[mc.RespAttack]{Code: mc.CodeAttack, Payload: mc.RespAttack{
				X: 2, Y: 3, Outcome: mb.AttackOutcomeShipHit, Hit: true,
			}},
		},
		{
			name:         "invalid x",
			expectedCode: mc.CodeAttack,
			expectedErr:  cerr.ErrXorYOutOfGridBound(255, 0).Error(),
			reqPayload:   mc.Message[mc.ReqAttack]{Code: mc.CodeAttack, Payload: mc.ReqAttack{X: 255, Y: 0}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, conn.WriteJSON(test.reqPayload))

			var respPayload mc.Message[mc.RespAttack]
			readJSON(t, conn, &respPayload)

			require.Equal(t, test.expectedCode, respPayload.Code)
			if test.expectedErr != "" {
				require.NotNil(t, respPayload.Error)
				require.Equal(t, test.expectedErr, respPayload.Error.ErrorDetails)
				return
			}
			require.Nil(t, respPayload.Error)
			require.Equal(t, test.expectedRespPayload.Payload, respPayload.Payload)
		})
	}
}

func TestWsOpponentBoard(t *testing.T) {
	srv, _ := newTestHttpServer(t)
	conn, _ := dialWs(t, srv.URL)

	postForm(t, srv, "/", "x=2&y=1")
	postForm(t, srv, "/", "x=9&y=0")

	require.NoError(t, conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeOpponentBoard)))

	var resp mc.Message[mc.RespOpponentBoard]
	readJSON(t, conn, &resp)

	require.Equal(t, mc.CodeOpponentBoard, resp.Code)
	require.Len(t, resp.Payload.Rows, mb.GridSize)
	require.Equal(t, "_X________", resp.Payload.Rows[2])
	require.Equal(t, "O_________", resp.Payload.Rows[9])
}

func TestWsInvalidSignals(t *testing.T) {
	srv, _ := newTestHttpServer(t)
	conn, _ := dialWs(t, srv.URL)

	tests := []struct {
		name         string
		payload      []byte
		expectedCode uint8
	}{
		{name: "random invalid code", payload: []byte(`{"code":200}`), expectedCode: mc.CodeInvalidSignal},
		{name: "not json", payload: []byte("x=1&y=2"), expectedCode: mc.CodeSignalAbsent},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, test.payload))

			var resp mc.Message[mc.NoPayload]
			readJSON(t, conn, &resp)
			require.Equal(t, test.expectedCode, resp.Code)
			require.NotNil(t, resp.Error)
		})
	}
}

func TestAttackEventsAreBroadcast(t *testing.T) {
	srv, server := newTestHttpServer(t)
	attackerConn, _ := dialWs(t, srv.URL)
	watcherConn, _ := dialWs(t, srv.URL)

	// attack over http reaches every session
	status, _ := postForm(t, srv, "/", "x=0&y=0")
	require.Equal(t, 200, status)

	for _, conn := range []*websocket.Conn{attackerConn, watcherConn} {
		var event mc.Message[mc.RespAttack]
		readJSON(t, conn, &event)
		require.Equal(t, mc.CodeAttackEvent, event.Code)
		require.Equal(t, mc.RespAttack{X: 0, Y: 0, Outcome: mb.AttackOutcomeShipSunk, Hit: true, Sink: "D"}, event.Payload)
	}

	// attack over websocket reaches everyone but the attacker
	require.NoError(t, attackerConn.WriteJSON(mc.Message[mc.ReqAttack]{Code: mc.CodeAttack, Payload: mc.ReqAttack{X: 4, Y: 4}}))

	var resp mc.Message[mc.RespAttack]
	readJSON(t, attackerConn, &resp)
	require.Equal(t, mc.CodeAttack, resp.Code)

	var event mc.Message[mc.RespAttack]
	readJSON(t, watcherConn, &event)
	require.Equal(t, mc.CodeAttackEvent, event.Code)
	require.Equal(t, mb.AttackOutcomeMiss, event.Payload.Outcome)

	// rejected attacks are not broadcast
	status, _ = postForm(t, srv, "/", "x=4&y=4")
	require.Equal(t, 410, status)
	watcherConn.SetReadDeadline(time.Now().Add(time.Millisecond * 200))
	_, _, err := watcherConn.ReadMessage()
	require.Error(t, err)

	require.Eventually(t, func() bool {
		bsm := server.SessionManager().(*mc.BattleshipSessionManager)
		return bsm.SessionCount() >= 1
	}, time.Second, time.Millisecond*20)
}

func TestWsFleetDestroyed(t *testing.T) {
	srv, _ := newTestHttpServer(t)
	conn, _ := dialWs(t, srv.URL)

	shots := []mb.Coordinates{{X: 0, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}, {X: 2, Y: 4}, {X: 2, Y: 5}}

	var resp mc.Message[mc.RespAttack]
	for _, shot := range shots {
		require.NoError(t, conn.WriteJSON(mc.Message[mc.ReqAttack]{Code: mc.CodeAttack, Payload: mc.ReqAttack{X: shot.X, Y: shot.Y}}))
		readJSON(t, conn, &resp)
		require.Nil(t, resp.Error)
	}

	require.Equal(t, mb.AttackOutcomeShipSunk, resp.Payload.Outcome)
	require.Equal(t, "C", resp.Payload.Sink)
	require.True(t, resp.Payload.FleetDestroyed)
}

func TestWsRequiresUpgrade(t *testing.T) {
	srv, _ := newTestHttpServer(t)

	status, _ := get(t, srv, PathWs)
	require.Equal(t, 400, status)
}
