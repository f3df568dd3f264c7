package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/RoomSignal/internal/application/metric"
)

const unmatchedRoute = "unmatched"

// PrometheusMiddleware пишет метрики по шаблону маршрута, а не по URI,
// иначе каждый room_id станет отдельной серией
func PrometheusMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			endpoint := c.Path()
			if endpoint == "" {
				endpoint = unmatchedRoute
			}

			metric.RecordHTTPMetrics(c.Request().Method, endpoint, responseStatus(c, err), time.Since(start))

			return err
		}
	}
}

func responseStatus(c echo.Context, err error) int {
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr.Code
		}

		return http.StatusInternalServerError
	}

	if status := c.Response().Status; status != 0 {
		return status
	}

	return http.StatusOK
}
