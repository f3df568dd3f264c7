package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const transcriptsTable = "consultation_transcripts"

var insertTranscriptQuery = fmt.Sprintf(
	"INSERT INTO %s (id, room_id, messages, message_count) VALUES ($1, $2, $3, $4)",
	transcriptsTable,
)

// TranscriptRepo пишет транскрипты консультаций в postgres
type TranscriptRepo struct {
	db    *sqlx.DB
	newID func() uuid.UUID
}

func NewTranscriptRepo(db *sqlx.DB) *TranscriptRepo {
	return &TranscriptRepo{
		db:    db,
		newID: uuid.New,
	}
}

// Save возвращает расположение вида consultation_transcripts/<id>
func (r *TranscriptRepo) Save(ctx context.Context, roomID string, messages []json.RawMessage) (string, error) {
	if messages == nil {
		messages = []json.RawMessage{}
	}

	payload, err := json.Marshal(messages)
	if err != nil {
		return "", fmt.Errorf("marshal messages: %w", err)
	}

	id := r.newID()

	_, err = r.db.ExecContext(
		ctx,
		insertTranscriptQuery,
		id,
		roomID,
		string(payload),
		len(messages),
	)
	if err != nil {
		return "", fmt.Errorf("insert transcript: %w", err)
	}

	return transcriptsTable + "/" + id.String(), nil
}
