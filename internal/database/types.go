package database

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
)

// ShotRecord одна попытка удара в журнале
type ShotRecord struct {
	ID        string
	ShotType  string
	Outcome   string // triggered | timed_out | error
	Sample    int
	Count     int
	Baseline  int
	Target    image.Point
	Duration  time.Duration
	ErrorText string
	ImageData []byte // PNG области цели, может быть пустым
	CreatedAt time.Time
}

// NewShotRecord запись с новым идентификатором
func NewShotRecord(shotType string) ShotRecord {
	return ShotRecord{ID: uuid.NewString(), ShotType: shotType}
}

// Validate проверяет обязательные поля перед вставкой
func (r ShotRecord) Validate() error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("invalid shot id %q: %w", r.ID, err)
	}
	if r.ShotType == "" {
		return errors.New("shot type is empty")
	}
	if r.Outcome == "" {
		return errors.New("shot outcome is empty")
	}
	return nil
}
