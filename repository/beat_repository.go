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

// BeatRepository defines all reads and writes against the beats
// collection. Beats are flat records with no nesting.
type BeatRepository interface {
	// List returns all beats, in no particular order.
	List(ctx context.Context) ([]*model.Beat, error)

	// Create stores a new beat and assigns its id. Missing required
	// fields yield a validation error.
	Create(ctx context.Context, b *model.Beat) error

	// Update merges the supplied fields into an existing beat and
	// returns the resulting record.
	Update(ctx context.Context, id int64, upd *model.BeatUpdate) (*model.Beat, error)

	// Delete removes a beat.
	Delete(ctx context.Context, id int64) error
}

// gormBeatRepository implements BeatRepository on the MySQL store.
type gormBeatRepository struct {
	store *db.Store
}

// NewGormBeatRepository creates a beat repository over the store.
func NewGormBeatRepository(store *db.Store) BeatRepository {
	return &gormBeatRepository{store: store}
}

func (r *gormBeatRepository) conn() (*gorm.DB, error) {
	g := r.store.DB()
	if g == nil {
		return nil, errs.Unavailable("Database not connected")
	}
	return g, nil
}

func (r *gormBeatRepository) List(ctx context.Context) ([]*model.Beat, error) {
	g, err := r.conn()
	if err != nil {
		return nil, err
	}

	beats := make([]*model.Beat, 0)
	if err := g.WithContext(ctx).Find(&beats).Error; err != nil {
		return nil, err
	}
	return beats, nil
}

func (r *gormBeatRepository) Create(ctx context.Context, b *model.Beat) error {
	g, err := r.conn()
	if err != nil {
		return err
	}

	if err := b.Validate(); err != nil {
		return err
	}

	return g.WithContext(ctx).Create(b).Error
}

func (r *gormBeatRepository) Update(ctx context.Context, id int64, upd *model.BeatUpdate) (*model.Beat, error) {
	g, err := r.conn()
	if err != nil {
		return nil, err
	}

	var b model.Beat
	err = g.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Beat not found")
			}
			return err
		}
		upd.Apply(&b)
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *gormBeatRepository) Delete(ctx context.Context, id int64) error {
	g, err := r.conn()
	if err != nil {
		return err
	}

	res := g.WithContext(ctx).Delete(&model.Beat{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("Beat not found")
	}
	return nil
}
