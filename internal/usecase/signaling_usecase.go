package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pion/webrtc/v4"

	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/application/metric"
	"github.com/qrave1/RoomSignal/internal/domain/models"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/memory"
)

// SignalingUsecase хранит offer/answer комнаты и факт установки соединения.
// Порядок offer -> answer -> confirm не навязывается.
type SignalingUsecase interface {
	GetOffer(ctx context.Context, roomID string) json.RawMessage
	SetOffer(ctx context.Context, roomID string, sdp json.RawMessage) error

	GetAnswer(ctx context.Context, roomID string) json.RawMessage
	SetAnswer(ctx context.Context, roomID string, sdp json.RawMessage) error

	ConfirmConnection(ctx context.Context, roomID string)

	GetState(ctx context.Context, roomID string) models.Room
}

type signalingUsecase struct {
	roomRepo memory.RoomRepository
}

func NewSignalingUsecase(roomRepo memory.RoomRepository) SignalingUsecase {
	return &signalingUsecase{roomRepo: roomRepo}
}

func (s *signalingUsecase) GetOffer(ctx context.Context, roomID string) json.RawMessage {
	room, _ := s.roomRepo.GetOrCreate(ctx, roomID)

	return room.Offer
}

func (s *signalingUsecase) SetOffer(ctx context.Context, roomID string, sdp json.RawMessage) error {
	if err := validateDescription(ctx, roomID, sdp, webrtc.SDPTypeOffer); err != nil {
		return err
	}

	stored := bytes.Clone(sdp)

	s.roomRepo.Update(ctx, roomID, func(room *models.Room) {
		room.Offer = stored
	})

	metric.IncrementDescriptions(webrtc.SDPTypeOffer.String())
	slog.Debug("offer stored", slog.String(constant.RoomID, roomID))

	return nil
}

func (s *signalingUsecase) GetAnswer(ctx context.Context, roomID string) json.RawMessage {
	room, _ := s.roomRepo.GetOrCreate(ctx, roomID)

	return room.Answer
}

func (s *signalingUsecase) SetAnswer(ctx context.Context, roomID string, sdp json.RawMessage) error {
	if err := validateDescription(ctx, roomID, sdp, webrtc.SDPTypeAnswer); err != nil {
		return err
	}

	stored := bytes.Clone(sdp)

	s.roomRepo.Update(ctx, roomID, func(room *models.Room) {
		room.Answer = stored
	})

	metric.IncrementDescriptions(webrtc.SDPTypeAnswer.String())
	slog.Debug("answer stored", slog.String(constant.RoomID, roomID))

	return nil
}

func (s *signalingUsecase) ConfirmConnection(ctx context.Context, roomID string) {
	var already bool

	s.roomRepo.Update(ctx, roomID, func(room *models.Room) {
		already = room.ConnectionConfirmed
		room.ConnectionConfirmed = true
	})

	if !already {
		metric.IncrementConnectionsConfirmed()
		slog.Info("connection confirmed", slog.String(constant.RoomID, roomID))
	}
}

func (s *signalingUsecase) GetState(ctx context.Context, roomID string) models.Room {
	room, _ := s.roomRepo.GetOrCreate(ctx, roomID)

	return room
}

// sessionDescription - то, что браузер отдает из RTCSessionDescription.toJSON()
type sessionDescription struct {
	Type string `json:"type"`
	SDP  string `json:"sdp"`
}

// validateDescription принимает объект {type, sdp} или строку с таким JSON.
// Несовпадение type и битый SDP только логируются.
func validateDescription(ctx context.Context, roomID string, raw json.RawMessage, expected webrtc.SDPType) error {
	if isAbsent(raw) {
		return ErrMissingSDP
	}

	body := bytes.TrimSpace(raw)

	if body[0] == '"' {
		var encoded string
		if err := json.Unmarshal(body, &encoded); err != nil {
			return ErrInvalidSDP
		}

		body = bytes.TrimSpace([]byte(encoded))
	}

	// null и прочие не-объекты json.Unmarshal в структуру пропускает
	if len(body) == 0 || body[0] != '{' {
		return ErrInvalidSDP
	}

	var desc sessionDescription
	if err := json.Unmarshal(body, &desc); err != nil {
		slog.WarnContext(
			ctx,
			"invalid session description",
			slog.String(constant.RoomID, roomID),
			slog.String(constant.Kind, expected.String()),
			slog.Any(constant.Error, err),
		)

		return ErrInvalidSDP
	}

	if got := webrtc.NewSDPType(desc.Type); got != expected {
		slog.WarnContext(
			ctx,
			"session description type mismatch",
			slog.String(constant.RoomID, roomID),
			slog.String(constant.Kind, expected.String()),
			slog.String(constant.SDPType, desc.Type),
		)
	}

	if desc.SDP != "" {
		parsed := webrtc.SessionDescription{Type: expected, SDP: desc.SDP}
		if _, err := parsed.Unmarshal(); err != nil {
			slog.DebugContext(
				ctx,
				"unparsable sdp body",
				slog.String(constant.RoomID, roomID),
				slog.Any(constant.Error, err),
			)
		}
	}

	return nil
}
