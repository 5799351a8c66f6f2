package usagelog

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Sink is the append-only store of usage fetch results.
type Sink interface {
	// Record appends one entry with a server-assigned fetch timestamp.
	Record(ctx context.Context, entry *Entry) error
	// Recent returns the most recent entries, newest first, capped at limit.
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

type gormSink struct {
	db *gorm.DB
}

// NewSink creates a usage log sink backed by GORM.
func NewSink(db *gorm.DB) Sink {
	return &gormSink{db: db}
}

func (s *gormSink) Record(ctx context.Context, entry *Entry) error {
	entry.FetchedAt = time.Now()
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *gormSink) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	var out []Entry
	err := s.db.WithContext(ctx).
		Order("fetched_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
