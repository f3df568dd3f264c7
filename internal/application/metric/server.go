package metric

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type healthResponse struct {
	Status      string `json:"status"`
	RoomsActive int    `json:"rooms_active"`
	Uptime      string `json:"uptime"`
}

// NewServer поднимает /metrics для prometheus и /health для проб оркестратора
func NewServer() *echo.Echo {
	startedAt := time.Now()

	e := echo.New()

	e.HideBanner = true
	e.HidePort = true

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{
			Status:      "ok",
			RoomsActive: RoomsActive(),
			Uptime:      time.Since(startedAt).Truncate(time.Second).String(),
		})
	})

	return e
}
