package repository

import (
	"context"
	"errors"

	"musicmanager/db"
	"musicmanager/errs"
	"musicmanager/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectRepository defines all reads and writes against the projects
// collection, including mutation of the embedded song list.
type ProjectRepository interface {
	// List returns all projects, in no particular order.
	List(ctx context.Context) ([]*model.Project, error)

	// Create stores a new project and assigns its id.
	Create(ctx context.Context, p *model.Project) error

	// Update merges the supplied fields into an existing project and
	// returns the resulting record.
	Update(ctx context.Context, id int64, upd *model.ProjectUpdate) (*model.Project, error)

	// Delete removes a project and, with it, all embedded songs.
	Delete(ctx context.Context, id int64) error

	// AddSong appends a song to a project, assigning the next song id
	// within that project.
	AddSong(ctx context.Context, projectID int64, song *model.Song) (*model.Song, error)

	// UpdateSong merges the supplied fields into one embedded song.
	UpdateSong(ctx context.Context, projectID, songID int64, upd *model.SongUpdate) (*model.Song, error)

	// DeleteSong removes one embedded song.
	DeleteSong(ctx context.Context, projectID, songID int64) error
}

// gormProjectRepository implements ProjectRepository on the MySQL store.
type gormProjectRepository struct {
	store        *db.Store
	defaultCover string
}

// NewGormProjectRepository creates a project repository over the store.
// defaultCover is assigned to projects created without a cover URL.
func NewGormProjectRepository(store *db.Store, defaultCover string) ProjectRepository {
	return &gormProjectRepository{store: store, defaultCover: defaultCover}
}

func (r *gormProjectRepository) conn() (*gorm.DB, error) {
	g := r.store.DB()
	if g == nil {
		return nil, errs.Unavailable("Database not connected")
	}
	return g, nil
}

// nextSongID computes the next song id within one project: one past the
// largest existing id, or 1 for an empty list. Song ids are scoped to
// their parent and unaffected by other projects.
func nextSongID(songs model.SongList) int64 {
	var max int64
	for _, s := range songs {
		if s.SongID > max {
			max = s.SongID
		}
	}
	return max + 1
}

// lockProject loads a project row under SELECT .. FOR UPDATE so a
// read-modify-write of the embedded song list cannot lose a concurrent
// update.
func lockProject(tx *gorm.DB, id int64) (*model.Project, error) {
	var p model.Project
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Project not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	g, err := r.conn()
	if err != nil {
		return nil, err
	}

	projects := make([]*model.Project, 0)
	if err := g.WithContext(ctx).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *gormProjectRepository) Create(ctx context.Context, p *model.Project) error {
	g, err := r.conn()
	if err != nil {
		return err
	}

	if err := p.Validate(); err != nil {
		return err
	}

	if p.Songs == nil {
		p.Songs = model.SongList{}
	}
	if p.Cover == "" {
		p.Cover = r.defaultCover
	}

	return g.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		// Songs supplied at creation time could not reference the id
		// before the insert; re-anchor them now.
		if len(p.Songs) > 0 {
			for i := range p.Songs {
				p.Songs[i].ProjectID = p.ID
			}
			if err := tx.Model(p).Update("project_songs", p.Songs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormProjectRepository) Update(ctx context.Context, id int64, upd *model.ProjectUpdate) (*model.Project, error) {
	g, err := r.conn()
	if err != nil {
		return nil, err
	}

	var p *model.Project
	err = g.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err = lockProject(tx, id)
		if err != nil {
			return err
		}
		upd.Apply(p)
		return tx.Save(p).Error
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *gormProjectRepository) Delete(ctx context.Context, id int64) error {
	g, err := r.conn()
	if err != nil {
		return err
	}

	res := g.WithContext(ctx).Delete(&model.Project{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("Project not found")
	}
	return nil
}

func (r *gormProjectRepository) AddSong(ctx context.Context, projectID int64, song *model.Song) (*model.Song, error) {
	g, err := r.conn()
	if err != nil {
		return nil, err
	}

	err = g.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		song.SongID = nextSongID(p.Songs)
		song.ProjectID = projectID
		p.Songs = append(p.Songs, *song)
		return tx.Model(p).Update("project_songs", p.Songs).Error
	})
	if err != nil {
		return nil, err
	}
	return song, nil
}

func (r *gormProjectRepository) UpdateSong(ctx context.Context, projectID, songID int64, upd *model.SongUpdate) (*model.Song, error) {
	g, err := r.conn()
	if err != nil {
		return nil, err
	}

	var updated model.Song
	err = g.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		idx := songIndex(p.Songs, songID)
		if idx < 0 {
			return errs.NotFound("Song not found")
		}
		upd.Apply(&p.Songs[idx])
		updated = p.Songs[idx]
		return tx.Model(p).Update("project_songs", p.Songs).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *gormProjectRepository) DeleteSong(ctx context.Context, projectID, songID int64) error {
	g, err := r.conn()
	if err != nil {
		return err
	}

	return g.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		idx := songIndex(p.Songs, songID)
		if idx < 0 {
			return errs.NotFound("Song not found")
		}
		p.Songs = append(p.Songs[:idx], p.Songs[idx+1:]...)
		return tx.Model(p).Update("project_songs", p.Songs).Error
	})
}

// songIndex finds a song by id within the list, or -1.
func songIndex(songs model.SongList, songID int64) int {
	for i, s := range songs {
		if s.SongID == songID {
			return i
		}
	}
	return -1
}
