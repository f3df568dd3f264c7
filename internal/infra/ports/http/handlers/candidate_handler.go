package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/RoomSignal/internal/infra/ports/http/dto"
	"github.com/qrave1/RoomSignal/internal/usecase"
)

type CandidateHandler struct {
	candidateUsecase usecase.CandidateUsecase
}

func NewCandidateHandler(candidateUsecase usecase.CandidateUsecase) *CandidateHandler {
	return &CandidateHandler{candidateUsecase: candidateUsecase}
}

func (h *CandidateHandler) PostCandidate(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CandidateRequest
	if err = c.Bind(&req); err != nil {
		return respondError(c, usecase.ErrInvalidPayload)
	}

	if err = h.candidateUsecase.PostCandidate(c.Request().Context(), roomID, req.From, req.Candidate); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// DrainCandidates отдает и очищает очередь стороны из ?for=
func (h *CandidateHandler) DrainCandidates(c echo.Context) error {
	roomID, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}

	candidates, err := h.candidateUsecase.DrainCandidates(c.Request().Context(), roomID, c.QueryParam("for"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CandidatesResponse{Candidates: candidates})
}
