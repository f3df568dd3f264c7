package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/RoomSignal/internal/infra/ports/http/dto"
	"github.com/qrave1/RoomSignal/internal/usecase"
)

type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase) *RoomHandler {
	return &RoomHandler{roomUsecase: roomUsecase}
}

func (h *RoomHandler) CreateRoom(c echo.Context) error {
	roomID := h.roomUsecase.CreateRoom(c.Request().Context())

	return c.JSON(http.StatusOK, dto.CreateRoomResponse{RoomID: roomID})
}

// ListRooms - ?open=true оставляет только комнаты с offer без answer
func (h *RoomHandler) ListRooms(c echo.Context) error {
	openOnly, _ := strconv.ParseBool(c.QueryParam("open"))

	summaries := h.roomUsecase.ListRooms(c.Request().Context(), openOnly)

	return c.JSON(http.StatusOK, dto.NewListRoomsResponse(summaries))
}

func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	deleted := h.roomUsecase.DeleteRoom(c.Request().Context(), roomID)

	return c.JSON(http.StatusOK, dto.DeleteRoomResponse{OK: true, Deleted: deleted})
}

func (h *RoomHandler) Finalize(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.MessagesRequest
	if err = c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrInvalidPayload)
	}

	res, err := h.roomUsecase.Finalize(c.Request().Context(), roomID, req.Messages)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.FinalizeResponse{
		Saved:         true,
		Path:          res.Location,
		MessagesCount: res.Count,
	})
}
