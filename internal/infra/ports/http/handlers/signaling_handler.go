package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/RoomSignal/internal/infra/ports/http/dto"
	"github.com/qrave1/RoomSignal/internal/usecase"
)

type SignalingHandler struct {
	signalingUsecase usecase.SignalingUsecase
	livenessUsecase  usecase.LivenessUsecase
}

func NewSignalingHandler(
	signalingUsecase usecase.SignalingUsecase,
	livenessUsecase usecase.LivenessUsecase,
) *SignalingHandler {
	return &SignalingHandler{
		signalingUsecase: signalingUsecase,
		livenessUsecase:  livenessUsecase,
	}
}

func (h *SignalingHandler) GetOffer(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	offer := h.signalingUsecase.GetOffer(c.Request().Context(), roomID)

	return c.JSON(http.StatusOK, dto.OfferResponse{Offer: offer})
}

func (h *SignalingHandler) SetOffer(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.SDPRequest
	if err = c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrInvalidSDP)
	}

	if err = h.signalingUsecase.SetOffer(c.Request().Context(), roomID, req.SDP); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

func (h *SignalingHandler) GetAnswer(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	answer := h.signalingUsecase.GetAnswer(c.Request().Context(), roomID)

	return c.JSON(http.StatusOK, dto.AnswerResponse{Answer: answer})
}

func (h *SignalingHandler) SetAnswer(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.SDPRequest
	if err = c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrInvalidSDP)
	}

	if err = h.signalingUsecase.SetAnswer(c.Request().Context(), roomID, req.SDP); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

func (h *SignalingHandler) ConfirmConnection(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	h.signalingUsecase.ConfirmConnection(c.Request().Context(), roomID)

	return c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

func (h *SignalingHandler) State(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	room := h.signalingUsecase.GetState(c.Request().Context(), roomID)

	return c.JSON(http.StatusOK, dto.NewStateResponseFromModel(room))
}

// Heartbeat всегда успешен: кривое тело просто не попадает в транскрипт
func (h *SignalingHandler) Heartbeat(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.MessagesRequest
	if err = c.Bind(&req); err != nil {
		req.Messages = nil
	}

	h.livenessUsecase.Heartbeat(c.Request().Context(), roomID, req.Messages)

	return c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

func (h *SignalingHandler) Reset(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	created := h.livenessUsecase.Reset(c.Request().Context(), roomID)

	return c.JSON(http.StatusOK, dto.ResetResponse{OK: true, Reset: !created, Created: created})
}
