package store

import (
	"context"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/internal/status"
	"wknd-backend/models"
)

// SaveMessage persists a chat message or contact form submission.
func (s *Store) SaveMessage(ctx context.Context, m *models.Message) error {
	collection, err := s.app.FindCollectionByNameOrId(CollectionMessages)
	if err != nil {
		return &status.PersistenceError{Op: "saveMessage", Err: err}
	}

	record := core.NewRecord(collection)
	record.Set("text", m.Text)
	record.Set("sender", m.Sender)
	record.Set("email", m.Email)
	record.Set("roomId", m.RoomID)
	record.Set("source", m.Source)
	record.Set("read", m.Read)
	record.Set("replied", m.Replied)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return &status.PersistenceError{Op: "saveMessage", Err: err}
	}

	m.ID = record.Id
	m.Timestamp = record.GetDateTime("created").Time()
	return nil
}

// ListMessages returns all messages, newest first.
func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	records, err := s.app.FindRecordsByFilter(CollectionMessages, "id != ''", "-created", 0, 0)
	if err != nil {
		return nil, &status.PersistenceError{Op: "listMessages", Err: err}
	}
	return messagesFromRecords(records), nil
}

// ListMessagesByRoom returns the messages of a single chat room.
func (s *Store) ListMessagesByRoom(ctx context.Context, roomID string) ([]models.Message, error) {
	records, err := s.app.FindRecordsByFilter(
		CollectionMessages,
		"roomId = {:roomId}",
		"-created",
		0,
		0,
		dbx.Params{"roomId": roomID},
	)
	if err != nil {
		return nil, &status.PersistenceError{Op: "listMessagesByRoom", Err: err}
	}
	return messagesFromRecords(records), nil
}

// MarkMessageRead flags a message as read and returns the updated message.
func (s *Store) MarkMessageRead(ctx context.Context, id string) (*models.Message, error) {
	record, err := s.app.FindRecordById(CollectionMessages, id)
	if err != nil {
		return nil, &status.NotFoundError{Resource: "message", Key: id}
	}

	record.Set("read", true)
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return nil, &status.PersistenceError{Op: "markMessageRead", Err: err}
	}

	return messageFromRecord(record), nil
}

// MarkMessageReplied flags a message as replied and stores the reply text.
// The flag is set before the reply email is attempted; a failed send does
// not roll it back.
func (s *Store) MarkMessageReplied(ctx context.Context, id, replyText string) (*models.Message, error) {
	record, err := s.app.FindRecordById(CollectionMessages, id)
	if err != nil {
		return nil, &status.NotFoundError{Resource: "message", Key: id}
	}

	record.Set("replied", true)
	record.Set("replyText", replyText)
	record.Set("repliedAt", time.Now().UTC())
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return nil, &status.PersistenceError{Op: "markMessageReplied", Err: err}
	}

	return messageFromRecord(record), nil
}

func messagesFromRecords(records []*core.Record) []models.Message {
	messages := make([]models.Message, 0, len(records))
	for _, record := range records {
		messages = append(messages, *messageFromRecord(record))
	}
	return messages
}

func messageFromRecord(record *core.Record) *models.Message {
	m := &models.Message{
		ID:        record.Id,
		Text:      record.GetString("text"),
		Sender:    record.GetString("sender"),
		Email:     record.GetString("email"),
		RoomID:    record.GetString("roomId"),
		Source:    record.GetString("source"),
		Read:      record.GetBool("read"),
		Replied:   record.GetBool("replied"),
		ReplyText: record.GetString("replyText"),
		Timestamp: record.GetDateTime("created").Time(),
	}
	if repliedAt := record.GetDateTime("repliedAt").Time(); !repliedAt.IsZero() {
		m.RepliedAt = &repliedAt
	}
	return m
}
