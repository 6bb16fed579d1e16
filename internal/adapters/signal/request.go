package signal

import (
	"github.com/dkeye/Party/internal/app"
	"github.com/dkeye/Party/internal/domain"
	"github.com/gin-gonic/gin"
)

// Keys shared with the HTTP router.
const (
	ClientTokenKey = "client_token"
	SessionRoomKey = "room"
	SessionNameKey = "name"
)

// parseConnectRequest reads ?room=&name=&check= from a connect request.
// An empty name asks for the host role.
func parseConnectRequest(c *gin.Context) app.AdmissionRequest {
	return app.AdmissionRequest{
		Room:      domain.NormalizeRoomCode(c.Query("room")),
		Identity:  domain.IdentityFromName(c.Query("name")),
		Preflight: c.Query("check") == "true",
	}
}
