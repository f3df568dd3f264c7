package dto

import (
	"encoding/json"
	"time"

	"github.com/qrave1/RoomSignal/internal/domain/models"
)

type SDPRequest struct {
	SDP json.RawMessage `json:"sdp"`
}

type CandidateRequest struct {
	From      string          `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}

// MessagesRequest - тело heartbeat и finalize, сообщения чата не интерпретируются
type MessagesRequest struct {
	Messages []json.RawMessage `json:"messages"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id"`
}

type OfferResponse struct {
	Offer json.RawMessage `json:"offer"`
}

type AnswerResponse struct {
	Answer json.RawMessage `json:"answer"`
}

type CandidatesResponse struct {
	Candidates []json.RawMessage `json:"candidates"`
}

type ResetResponse struct {
	OK      bool `json:"ok"`
	Reset   bool `json:"reset,omitempty"`
	Created bool `json:"created,omitempty"`
}

type FinalizeResponse struct {
	Saved         bool   `json:"saved"`
	Path          string `json:"path"`
	MessagesCount int    `json:"messagesCount"`
}

type DeleteRoomResponse struct {
	OK      bool `json:"ok"`
	Deleted bool `json:"deleted"`
}

type StateResponse struct {
	RoomID              string    `json:"room_id"`
	HasOffer            bool      `json:"hasOffer"`
	HasAnswer           bool      `json:"hasAnswer"`
	ConnectionConfirmed bool      `json:"connectionConfirmed"`
	State               string    `json:"state"`
	LastHeartbeat       time.Time `json:"lastHeartbeat"`
}

func NewStateResponseFromModel(room models.Room) StateResponse {
	return StateResponse{
		RoomID:              room.ID,
		HasOffer:            room.HasOffer(),
		HasAnswer:           room.HasAnswer(),
		ConnectionConfirmed: room.ConnectionConfirmed,
		State:               string(room.State()),
		LastHeartbeat:       room.LastHeartbeat,
	}
}

type RoomSummaryResponse struct {
	RoomID    string    `json:"room_id"`
	CreatedAt time.Time `json:"created_at"`
	HasOffer  bool      `json:"has_offer"`
	HasAnswer bool      `json:"has_answer"`
}

type ListRoomsResponse struct {
	Rooms []RoomSummaryResponse `json:"rooms"`
}

func NewListRoomsResponse(summaries []models.RoomSummary) ListRoomsResponse {
	resp := ListRoomsResponse{
		Rooms: make([]RoomSummaryResponse, 0, len(summaries)),
	}

	for _, s := range summaries {
		resp.Rooms = append(resp.Rooms, RoomSummaryResponse{
			RoomID:    s.ID,
			CreatedAt: s.CreatedAt,
			HasOffer:  s.HasOffer,
			HasAnswer: s.HasAnswer,
		})
	}

	return resp
}
