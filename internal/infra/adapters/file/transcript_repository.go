package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type transcriptDocument struct {
	RoomID   string            `json:"room_id"`
	SavedAt  time.Time         `json:"saved_at"`
	Messages []json.RawMessage `json:"messages"`
}

// TranscriptRepository пишет каждый транскрипт отдельным JSON файлом в dir
type TranscriptRepository struct {
	dir string
	now func() time.Time
}

func NewTranscriptRepository(dir string) *TranscriptRepository {
	return &TranscriptRepository{
		dir: dir,
		now: time.Now,
	}
}

func (r *TranscriptRepository) Save(ctx context.Context, roomID string, messages []json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if messages == nil {
		messages = []json.RawMessage{}
	}

	savedAt := r.now().UTC()

	data, err := json.MarshalIndent(
		transcriptDocument{RoomID: roomID, SavedAt: savedAt, Messages: messages},
		"",
		"  ",
	)
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}

	if err = os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	name := fmt.Sprintf("%s-%d.json", safeName(roomID), savedAt.UnixNano())
	path := filepath.Join(r.dir, name)

	// пишем во временный файл, чтобы читатель не увидел половину транскрипта
	tmp, err := os.CreateTemp(r.dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write transcript: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close transcript: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename transcript: %w", err)
	}

	return path, nil
}

func safeName(roomID string) string {
	name := unsafeNameChars.ReplaceAllString(roomID, "_")
	if name == "" || name == "_" {
		return "room"
	}

	return name
}
