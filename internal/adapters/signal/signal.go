package signal

import (
	"context"
	"net/http"
	"sync"

	"github.com/dkeye/Party/internal/app/orch"
	"github.com/dkeye/Party/internal/config"
	"github.com/dkeye/Party/internal/core"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type SignalWSController struct {
	Orch *orch.Orchestrator
	cfg  *config.Config

	upgrader websocket.Upgrader
}

func NewSignalWSController(o *orch.Orchestrator, cfg *config.Config) *SignalWSController {
	return &SignalWSController{
		Orch: o,
		cfg:  cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// WsSignalConn is the transport endpoint of one member. The write pump owns
// the socket: Close only stops the queue and the pump tears the socket down.
type WsSignalConn struct {
	id   core.ConnID
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsSignalConn(ws *websocket.Conn, buffer int) *WsSignalConn {
	return &WsSignalConn{
		id:   core.ConnID(uuid.NewString()),
		conn: ws,
		send: make(chan core.Frame, buffer),
	}
}

func (c *WsSignalConn) ID() core.ConnID { return c.id }

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// HandleSignal admits a connect request and, unless it is a preflight
// check, upgrades it and starts the pumps.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	req := parseConnectRequest(c)
	logger := log.With().
		Str("module", "signal").
		Str("room", string(req.Room)).
		Str("member", req.Identity.String()).
		Str("client", c.GetString(ClientTokenKey)).
		Logger()

	if err := ctl.Orch.Admit(req); err != nil {
		logger.Info().Err(err).Bool("preflight", req.Preflight).Msg("connection rejected")
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if req.Preflight {
		c.String(http.StatusOK, "ok")
		return
	}

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, ctl.rememberSession(c, string(req.Room), req.Identity.Name()))
	if err != nil {
		logger.Error().Err(err).Msg("ws upgrade")
		return
	}

	conn := newWsSignalConn(ws, ctl.cfg.SendBuffer)
	sess := core.MemberSession{Room: req.Room, Identity: req.Identity, Signal: conn}
	logger.Info().Str("conn", string(conn.ID())).Msg("new WS connection")

	connCtx, cancel := context.WithCancel(ctx)
	ctl.Orch.OnOpen(sess)

	go ctl.writePump(connCtx, conn)
	go ctl.readPump(cancel, sess, conn)
}

// rememberSession stores the joined room in the cookie session and returns
// the cookies to attach to the upgrade response.
func (ctl *SignalWSController) rememberSession(c *gin.Context, room, name string) http.Header {
	s := sessions.Default(c)
	s.Set(SessionRoomKey, room)
	s.Set(SessionNameKey, name)
	if err := s.Save(); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("session save")
	}
	cookies := c.Writer.Header().Values("Set-Cookie")
	if len(cookies) == 0 {
		return nil
	}
	return http.Header{"Set-Cookie": cookies}
}
