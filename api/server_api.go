package api

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-board/db/sqlc"
	cerr "github.com/saeidalz13/battleship-board/internal/error"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
	mc "github.com/saeidalz13/battleship-board/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	PathWs = "/battleship"
)

var defaultPort = 8000

type Server struct {
	port           int
	stage          string
	board          *mb.Board
	dbManager      sqlc.DbManager
	sessionManager mc.SessionManager
	gameHandler    *GameHandler
	ipnet          net.IPNet
	upgrader       websocket.Upgrader
}

type Option func(*Server) error

func NewServer(board *mb.Board, optFuncs ...Option) *Server {
	server := Server{
		board:     board,
		stage:     StageDev,
		dbManager: sqlc.NewDbManager(nil),
		upgrader: websocket.Upgrader{
			// good average time since this is not a high-latency operation such as video streaming
			HandshakeTimeout: time.Second * 5,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
	}

	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.port == 0 {
		server.port = defaultPort
	}
	if server.sessionManager == nil {
		server.sessionManager = mc.NewBattleshipSessionManager()
	}

	server.ipnet = getServerIpNet()
	server.gameHandler = NewGameHandler(board, &server)

	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return cerr.ErrInvalidStage(stage)
		}
		s.stage = stage
		return nil
	}
}

// A nil querier leaves analytics disabled.
func WithQuerier(q sqlc.Querier) Option {
	return func(s *Server) error {
		s.dbManager = sqlc.NewDbManager(q)
		return nil
	}
}

func WithSessionManager(sm mc.SessionManager) Option {
	return func(s *Server) error {
		s.sessionManager = sm
		return nil
	}
}

func (s *Server) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", s.port)
}

func (s *Server) SessionManager() mc.SessionManager {
	return s.sessionManager
}

// Expose this method to use it in testing
func (s *Server) GetIpNet() net.IPNet {
	return s.ipnet
}

// Router builds the routing table of the game.
func (s *Server) Router() *Router {
	return NewRouteBuilder().
		Get(PathOpponentBoard, s.gameHandler.HandleOpponentBoard).
		Get(PathOwnBoard, s.gameHandler.HandleOwnBoard).
		Get(PathWs, s.HandleWs).
		DefaultGet(s.gameHandler.OnGet).
		DefaultPost(s.gameHandler.OnPost).
		Build()
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// every path goes through the game router; it matches exact paths only
	r.Handle("/*", s.Router())
	return r
}

// OnAttack records the attack in the analytics and tells every
// other websocket session about it.
func (s *Server) OnAttack(senderSessionId string, coords mb.Coordinates, result mb.AttackResult) {
	ctx, cancel := sqlc.QueryCtx()
	defer cancel()

	serverPqtypeInet := pqtype.Inet{IPNet: s.ipnet, Valid: true}
	sunk := result.Outcome == mb.AttackOutcomeShipSunk
	if err := s.dbManager.Analytics.RecordAttack(ctx, serverPqtypeInet, sunk); err != nil {
		// analytics never fail the attack
		log.Println(err)
	}

	event := mc.NewMessage[mc.RespAttack](mc.CodeAttackEvent)
	event.AddPayload(newRespAttack(coords, result))
	s.sessionManager.Broadcast(senderSessionId, event, mc.MessageTypeJSON)
}

// getServerIpNet finds the first non-loopback IPv4 address of the host.
// Loopback is used if there is none.
func getServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list network interfaces:", err)
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip := ipnet.IP.To4(); ip != nil && !ip.IsLoopback() {
				return net.IPNet{IP: ip, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	log.Println("no non-loopback ipv4 address found; using loopback for analytics")
	return loopback
}
