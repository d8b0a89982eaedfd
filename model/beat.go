package model

import (
	"time"

	"musicmanager/errs"
)

// Beat is a standalone instrumental asset, unrelated to projects.
type Beat struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"beat_name" gorm:"column:beat_name;size:255;not null"`
	Author       string    `json:"beat_author" gorm:"column:beat_author;size:255;not null"`
	BPM          string    `json:"beat_bpm" gorm:"column:beat_bpm;size:16;not null"`
	Instrumental string    `json:"beat_instrumental" gorm:"column:beat_instrumental;size:767"`
	Length       string    `json:"beat_length" gorm:"column:beat_length;size:16"` // "M:SS"
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks the fields required on creation.
func (b *Beat) Validate() error {
	if b.Name == "" || b.Author == "" || b.BPM == "" {
		return errs.Validation("Missing required beat fields (name, author, bpm)")
	}
	return nil
}

// BeatUpdate is a partial-update payload. Only non-nil fields overwrite
// the stored record; the id is never caller-writable.
type BeatUpdate struct {
	Name         *string `json:"beat_name"`
	Author       *string `json:"beat_author"`
	BPM          *string `json:"beat_bpm"`
	Instrumental *string `json:"beat_instrumental"`
	Length       *string `json:"beat_length"`
}

// Apply merges the supplied fields into b.
func (u *BeatUpdate) Apply(b *Beat) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.BPM != nil {
		b.BPM = *u.BPM
	}
	if u.Instrumental != nil {
		b.Instrumental = *u.Instrumental
	}
	if u.Length != nil {
		b.Length = *u.Length
	}
}
