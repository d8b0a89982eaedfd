package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"musicmanager/errs"
)

// Project types accepted by the frontend.
const (
	ProjectTypeAlbum  = "Album/EP"
	ProjectTypeSingle = "Single"
)

// Song is a track embedded in exactly one project. Songs have no
// existence outside their parent: the whole list is stored as a JSON
// column on the project row and rewritten on every song mutation.
type Song struct {
	SongID        int64  `json:"song_id"`
	Name          string `json:"song_name"`
	Collaborators string `json:"song_collaborators"`
	Instrumental  string `json:"song_instrumental"`
	Lyrics        string `json:"song_lyrics"`
	Duration      string `json:"song_duration"` // "M:SS", as reported by the media service
	ProjectID     int64  `json:"project_id"`    // always equals the parent project id
}

// SongList is the embedded song sequence, persisted as JSON.
type SongList []Song

// Scan implements sql.Scanner.
func (l *SongList) Scan(value interface{}) error {
	if value == nil {
		*l = SongList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("failed to unmarshal JSON value:", value))
	}

	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer. An empty list is stored as [] rather
// than NULL so a project always round-trips with a song array.
func (l SongList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return json.Marshal([]Song{})
	}
	return json.Marshal(l)
}

// Project is a top-level music work with an ordered, embedded song list.
type Project struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"project_name" gorm:"column:project_name;size:255;not null"`
	Type        string    `json:"project_type" gorm:"column:project_type;size:32;not null"`
	Description string    `json:"project_description" gorm:"column:project_description;size:2000"`
	Cover       string    `json:"project_cover" gorm:"column:project_cover;size:767"`
	Status      bool      `json:"project_status" gorm:"column:project_status"`
	Songs       SongList  `json:"project_songs" gorm:"column:project_songs;type:json"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the fields required on creation.
func (p *Project) Validate() error {
	if p.Name == "" {
		return errs.Validation("Missing required field project_name")
	}
	if p.Type == "" {
		return errs.Validation("Missing required field project_type")
	}
	return nil
}

// ProjectUpdate is a partial-update payload. Only non-nil fields
// overwrite the stored record; the id is never caller-writable.
type ProjectUpdate struct {
	Name        *string   `json:"project_name"`
	Type        *string   `json:"project_type"`
	Description *string   `json:"project_description"`
	Cover       *string   `json:"project_cover"`
	Status      *bool     `json:"project_status"`
	Songs       *SongList `json:"project_songs"`
}

// Apply merges the supplied fields into p. A replaced song list has its
// back-references re-anchored to p, keeping project_id consistent no
// matter what the caller sent.
func (u *ProjectUpdate) Apply(p *Project) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Type != nil {
		p.Type = *u.Type
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Cover != nil {
		p.Cover = *u.Cover
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.Songs != nil {
		songs := make(SongList, len(*u.Songs))
		copy(songs, *u.Songs)
		for i := range songs {
			songs[i].ProjectID = p.ID
		}
		p.Songs = songs
	}
}

// SongUpdate is a partial-update payload for one embedded song.
// song_id and project_id are identity fields and never merged.
type SongUpdate struct {
	Name          *string `json:"song_name"`
	Collaborators *string `json:"song_collaborators"`
	Instrumental  *string `json:"song_instrumental"`
	Lyrics        *string `json:"song_lyrics"`
	Duration      *string `json:"song_duration"`
}

// Apply merges the supplied fields into s.
func (u *SongUpdate) Apply(s *Song) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Collaborators != nil {
		s.Collaborators = *u.Collaborators
	}
	if u.Instrumental != nil {
		s.Instrumental = *u.Instrumental
	}
	if u.Lyrics != nil {
		s.Lyrics = *u.Lyrics
	}
	if u.Duration != nil {
		s.Duration = *u.Duration
	}
}
