package models

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// Party - роль участника комнаты
type Party uint8

const (
	PartyCaller Party = iota
	PartyCallee
)

func (p Party) String() string {
	if p == PartyCallee {
		return "callee"
	}

	return "caller"
}

// ParseParty разбирает роль без учета регистра
func ParseParty(s string) (Party, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "caller":
		return PartyCaller, true
	case "callee":
		return PartyCallee, true
	default:
		return 0, false
	}
}

// NegotiationState - этап согласования, вычисляется из содержимого комнаты и ничего не запрещает
type NegotiationState string

const (
	StateEmpty        NegotiationState = "empty"
	StateOfferPosted  NegotiationState = "offer_posted"
	StateAnswerPosted NegotiationState = "answer_posted"
	StateConnected    NegotiationState = "connected"
)

type Room struct {
	ID        string
	CreatedAt time.Time

	Offer  json.RawMessage
	Answer json.RawMessage

	// Candidates индексируется Party
	Candidates [2][]json.RawMessage

	LastHeartbeat       time.Time
	ConnectionConfirmed bool

	Messages []json.RawMessage
}

func NewRoom(id string, now time.Time) *Room {
	return &Room{
		ID:            id,
		CreatedAt:     now,
		LastHeartbeat: now,
	}
}

// Clone возвращает копию, не разделяющую слайсы с оригиналом
func (r *Room) Clone() Room {
	c := *r
	c.Candidates[PartyCaller] = slices.Clone(r.Candidates[PartyCaller])
	c.Candidates[PartyCallee] = slices.Clone(r.Candidates[PartyCallee])
	c.Messages = slices.Clone(r.Messages)

	return c
}

func (r *Room) HasOffer() bool {
	return len(r.Offer) > 0
}

func (r *Room) HasAnswer() bool {
	return len(r.Answer) > 0
}

// IsOpen - есть offer, но еще нет answer
func (r *Room) IsOpen() bool {
	return r.HasOffer() && !r.HasAnswer()
}

func (r *Room) State() NegotiationState {
	switch {
	case r.ConnectionConfirmed:
		return StateConnected
	case r.HasAnswer():
		return StateAnswerPosted
	case r.HasOffer():
		return StateOfferPosted
	default:
		return StateEmpty
	}
}

// DrainCandidates возвращает очередь стороны и очищает ее
func (r *Room) DrainCandidates(p Party) []json.RawMessage {
	drained := r.Candidates[p]
	r.Candidates[p] = nil

	return drained
}

func (r *Room) ClearCandidates() {
	r.Candidates[PartyCaller] = nil
	r.Candidates[PartyCallee] = nil
}

// ResetNegotiation возвращает комнату в StateEmpty, сохраняя ID, CreatedAt и Messages
func (r *Room) ResetNegotiation() {
	r.Offer = nil
	r.Answer = nil
	r.ConnectionConfirmed = false
	r.ClearCandidates()
}

type RoomSummary struct {
	ID        string
	CreatedAt time.Time
	HasOffer  bool
	HasAnswer bool
}

func (r *Room) Summary() RoomSummary {
	return RoomSummary{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		HasOffer:  r.HasOffer(),
		HasAnswer: r.HasAnswer(),
	}
}
