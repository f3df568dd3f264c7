package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesDocument(t *testing.T) {
	dir := t.TempDir()
	repo := NewTranscriptRepository(dir)
	repo.now = func() time.Time { return time.Unix(1700000000, 0) }

	messages := []json.RawMessage{
		json.RawMessage(`{"from":"doctor","text":"hello"}`),
		json.RawMessage(`{"from":"patient","text":"hi"}`),
	}

	path, err := repo.Save(context.Background(), "room-1", messages)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, "room-1-1700000000000000000.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc transcriptDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "room-1", doc.RoomID)
	require.Len(t, doc.Messages, 2)
	assert.JSONEq(t, `{"from":"patient","text":"hi"}`, string(doc.Messages[1]))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveSanitizesRoomID(t *testing.T) {
	dir := t.TempDir()
	repo := NewTranscriptRepository(dir)

	path, err := repo.Save(context.Background(), "../../etc/passwd", nil)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"messages": []`)
}

func TestSaveHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTranscriptRepository(t.TempDir()).Save(ctx, "room-1", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "abc-1_2", safeName("abc-1_2"))
	assert.Equal(t, "a_b", safeName("a/b"))
	assert.Equal(t, "room", safeName(".."))
	assert.Equal(t, "room", safeName(""))
}
