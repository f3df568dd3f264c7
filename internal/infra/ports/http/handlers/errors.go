package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/infra/ports/http/dto"
	"github.com/qrave1/RoomSignal/internal/usecase"
)

var errMissingRoom = &usecase.ValidationError{Message: "Missing room"}

// roomParam возвращает идентификатор комнаты из пути
func roomParam(c echo.Context) (string, error) {
	roomID := c.Param("room")
	if roomID == "" {
		return "", errMissingRoom
	}

	return roomID, nil
}

// respondError отдает 400 с текстом ошибки валидации, остальное - 500
func respondError(c echo.Context, err error) error {
	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		slog.WarnContext(
			c.Request().Context(),
			"rejected request",
			slog.String(constant.RoomID, c.Param("room")),
			slog.String(constant.Error, vErr.Message),
		)

		return c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: vErr.Message})
	}

	slog.ErrorContext(
		c.Request().Context(),
		"request failed",
		slog.String(constant.RoomID, c.Param("room")),
		slog.Any(constant.Error, err),
	)

	return c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Internal error"})
}
