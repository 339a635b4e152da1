package storage

import (
	"context"
	"time"
)

// SealedLog is the write-once creation narrative of a product.
type SealedLog struct {
	ProductID int64
	UserHash  string
	SealedAt  time.Time
	Body      string
}

// Archiver keeps an out-of-database copy of sealed prompt logs.
type Archiver interface {
	ArchiveSealedLog(ctx context.Context, log SealedLog) (string, error)
}
