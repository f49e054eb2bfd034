//go:generate go run go.uber.org/mock/mockgen -source=index.go -destination=../mocks/mock_message_index.go -package=mocks
package repositories

import (
	"context"
	"log/slog"
	"sync"

	"github.com/blugelabs/bluge"

	"chat-deck/domain"
)

type IMessageIndex interface {
	Index(msg domain.Message) error
	Rebuild(messages []domain.Message) error
	Search(ctx context.Context, terms string, channelID string, limit int) ([]IndexHit, error)
	Close() error
}

// IndexHit is one full-text match: the message identifier plus the engine
// score.
type IndexHit struct {
	MessageID string
	ChannelID string
	Score     float64
}

// MessageIndex is an in-memory Bluge index over message content. The
// session owns it for its whole lifetime; nothing is persisted.
type MessageIndex struct {
	mu     sync.Mutex
	writer *bluge.Writer
	log    *slog.Logger
}

func NewMessageIndex(log *slog.Logger) (*MessageIndex, error) {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return nil, err
	}
	return &MessageIndex{writer: writer, log: log}, nil
}

// Index upserts a single message document.
func (i *MessageIndex) Index(msg domain.Message) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	doc := document(msg)
	return i.writer.Update(doc.ID(), doc)
}

// Rebuild replaces the index content wholesale: a fresh in-memory writer is
// loaded with the snapshot and swapped in, and the previous one is closed.
func (i *MessageIndex) Rebuild(messages []domain.Message) error {
	fresh, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return err
	}
	batch := bluge.NewBatch()
	for _, msg := range messages {
		doc := document(msg)
		batch.Update(doc.ID(), doc)
	}
	if err := fresh.Batch(batch); err != nil {
		_ = fresh.Close()
		return err
	}

	i.mu.Lock()
	old := i.writer
	i.writer = fresh
	i.mu.Unlock()
	if err := old.Close(); err != nil {
		i.log.Warn("failed to close replaced index writer", "error", err)
	}
	return nil
}

// Search runs a match query over content, optionally restricted to one
// channel, and returns up to limit hits ordered by engine score.
func (i *MessageIndex) Search(ctx context.Context, terms string, channelID string, limit int) ([]IndexHit, error) {
	i.mu.Lock()
	writer := i.writer
	i.mu.Unlock()

	reader, err := writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			i.log.Warn("failed to close index reader", "error", err)
		}
	}()

	var query bluge.Query
	match := bluge.NewMatchQuery(terms).SetField("content")
	if channelID == "" {
		query = match
	} else {
		query = bluge.NewBooleanQuery().
			AddMust(match).
			AddMust(bluge.NewTermQuery(channelID).SetField("channel"))
	}

	request := bluge.NewTopNSearch(limit, query)
	iter, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var hits []IndexHit
	next, err := iter.Next()
	for err == nil && next != nil {
		hit := IndexHit{Score: next.Score}
		visitErr := next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.MessageID = string(value)
			case "channel":
				hit.ChannelID = string(value)
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		hits = append(hits, hit)
		next, err = iter.Next()
	}
	if err != nil {
		return nil, err
	}
	return hits, nil
}

func (i *MessageIndex) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.writer.Close()
}

func document(msg domain.Message) *bluge.Document {
	return bluge.NewDocument(msg.ID.String()).
		AddField(bluge.NewKeywordField("channel", msg.ChannelID).StoreValue()).
		AddField(bluge.NewKeywordField("author", msg.UserID).StoreValue()).
		AddField(bluge.NewTextField("content", msg.Content).StoreValue())
}
