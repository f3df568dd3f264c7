package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/qrave1/RoomSignal/internal/application/config"
	"github.com/qrave1/RoomSignal/internal/infra/ports/http/handlers"
	"github.com/qrave1/RoomSignal/internal/infra/ports/http/middleware"
)

func New(
	cfg *config.Config,
	roomHandler *handlers.RoomHandler,
	signalingHandler *handlers.SignalingHandler,
	candidateHandler *handlers.CandidateHandler,
	iceHandler *handlers.IceHandler,
) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.SlogLogger())
	e.Use(middleware.PrometheusMiddleware())
	e.Use(echomw.CORSWithConfig(corsConfig(cfg)))

	var auth []echo.MiddlewareFunc
	if cfg.JWTSecret != "" {
		auth = append(auth, middleware.JWTAuthMiddleware(cfg.JWTSecret))
	}

	e.GET("/ice", iceHandler.IceServers, auth...)

	rooms := e.Group("/rooms", auth...)
	{
		rooms.GET("", roomHandler.ListRooms)
		rooms.POST("/create", roomHandler.CreateRoom)
		rooms.DELETE("/:room", roomHandler.DeleteRoom)

		rooms.GET("/:room/offer", signalingHandler.GetOffer)
		rooms.POST("/:room/offer", signalingHandler.SetOffer)
		rooms.GET("/:room/answer", signalingHandler.GetAnswer)
		rooms.POST("/:room/answer", signalingHandler.SetAnswer)

		rooms.GET("/:room/candidates", candidateHandler.DrainCandidates)
		rooms.POST("/:room/candidates", candidateHandler.PostCandidate)
		// старые клиенты шлют в единственном числе
		rooms.POST("/:room/candidate", candidateHandler.PostCandidate)

		rooms.POST("/:room/heartbeat", signalingHandler.Heartbeat)
		rooms.POST("/:room/reset", signalingHandler.Reset)
		rooms.POST("/:room/confirm-connection", signalingHandler.ConfirmConnection)
		rooms.GET("/:room/state", signalingHandler.State)

		rooms.POST("/:room/finalizar", roomHandler.Finalize)
		rooms.POST("/:room/finalize", roomHandler.Finalize)
	}

	return e
}

func corsConfig(cfg *config.Config) echomw.CORSConfig {
	origins := []string{cfg.Domain}
	if cfg.Debug {
		origins = []string{"*"}
	}

	return echomw.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: !cfg.Debug,
		MaxAge:           86400,
	}
}
