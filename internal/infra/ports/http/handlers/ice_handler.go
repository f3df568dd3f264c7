package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pion/webrtc/v4"

	"github.com/qrave1/RoomSignal/internal/application/config"
)

const turnCredentialTTL = time.Hour

type IceHandler struct {
	cfg *config.Config
	now func() time.Time
}

func NewIceHandler(cfg *config.Config) *IceHandler {
	return &IceHandler{cfg: cfg, now: time.Now}
}

// IceServers отдает STUN сервера и, если настроен coturn, TURN с временными кредами
func (h *IceHandler) IceServers(c echo.Context) error {
	servers := make([]webrtc.ICEServer, 0, 2)

	if len(h.cfg.STUNURLs) > 0 {
		servers = append(servers, webrtc.ICEServer{URLs: h.cfg.STUNURLs})
	}

	if h.cfg.TurnEnabled() {
		username, password := turnCredentials(h.cfg.CoturnServer.Secret, h.now().Add(turnCredentialTTL))

		servers = append(servers, webrtc.ICEServer{
			URLs: []string{
				h.cfg.TurnUDPServer.URLs[0],
				h.cfg.TurnTCPServer.URLs[0],
			},
			Username:   username,
			Credential: password,
		})
	}

	return c.JSON(http.StatusOK, servers)
}

// turnCredentials - схема use-auth-secret coturn: username = unix время истечения,
// пароль = base64(HMAC-SHA1(secret, username))
func turnCredentials(secret string, expiresAt time.Time) (string, string) {
	username := strconv.FormatInt(expiresAt.Unix(), 10)

	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(username))

	return username, base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
