package http

import (
	"context"
	"net/http"

	"github.com/dkeye/Party/internal/adapters/signal"
	"github.com/dkeye/Party/internal/app/orch"
	"github.com/dkeye/Party/internal/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func genClientToken() string {
	idStr := uuid.NewString()
	return idStr
}

func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set(signal.ClientTokenKey, token)
		c.Next()
	}
}

// CORSMiddleware lets browser clients on other origins read the
// diagnostic and preflight responses.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator) *gin.Engine {
	gin.SetMode(cfg.Mode)

	r := gin.New()
	if cfg.Mode == gin.DebugMode {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("PartySessions", store))
	r.Use(ClientTokenMiddleware())

	// GET /stats: the whole registry, read-only
	r.GET("/stats", func(c *gin.Context) {
		data, err := o.Stats()
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("stats marshal")
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": o.RoomCount()})
	})

	api := r.Group("/api")

	// GET /api/session: what this browser last joined
	api.GET("/session", func(c *gin.Context) {
		s := sessions.Default(c)
		room, _ := s.Get(signal.SessionRoomKey).(string)
		name, _ := s.Get(signal.SessionNameKey).(string)
		c.JSON(http.StatusOK, gin.H{
			"client": c.GetString(signal.ClientTokenKey),
			"room":   room,
			"name":   name,
		})
	})

	// Everything else is a connect request:
	// GET /?room={code}&name={player}&check=true
	ctrl := signal.NewSignalWSController(o, cfg)
	r.NoRoute(func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Str("mode", cfg.Mode).Msg("router setup")
	return r
}
