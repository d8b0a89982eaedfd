package server

import (
	"context"
	"errors"

	"musicmanager/config"
	"musicmanager/errs"
	"musicmanager/model"
)

const testDefaultCover = "/static/covers/default-cover.png"

var errTestStore = errors.New("simulated store failure")

// fakeProjectRepo is an in-memory stand-in with the same outward
// semantics as the real repository: store-assigned sequential ids that
// are never reused, per-project song ids, field-level merges.
type fakeProjectRepo struct {
	projects map[int64]*model.Project
	lastID   int64
	failWith error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[int64]*model.Project{}}
}

func (f *fakeProjectRepo) List(ctx context.Context) ([]*model.Project, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]*model.Project, 0, len(f.projects))
	for _, p := range f.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *model.Project) error {
	if f.failWith != nil {
		return f.failWith
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Songs == nil {
		p.Songs = model.SongList{}
	}
	if p.Cover == "" {
		p.Cover = testDefaultCover
	}
	f.lastID++
	p.ID = f.lastID
	for i := range p.Songs {
		p.Songs[i].ProjectID = p.ID
	}
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, id int64, upd *model.ProjectUpdate) (*model.Project, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.projects[id]
	if !ok {
		return nil, errs.NotFound("Project not found")
	}
	upd.Apply(p)
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.projects[id]; !ok {
		return errs.NotFound("Project not found")
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) AddSong(ctx context.Context, projectID int64, song *model.Song) (*model.Song, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.projects[projectID]
	if !ok {
		return nil, errs.NotFound("Project not found")
	}
	var max int64
	for _, s := range p.Songs {
		if s.SongID > max {
			max = s.SongID
		}
	}
	song.SongID = max + 1
	song.ProjectID = projectID
	p.Songs = append(p.Songs, *song)
	return song, nil
}

func (f *fakeProjectRepo) UpdateSong(ctx context.Context, projectID, songID int64, upd *model.SongUpdate) (*model.Song, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.projects[projectID]
	if !ok {
		return nil, errs.NotFound("Project not found")
	}
	for i := range p.Songs {
		if p.Songs[i].SongID == songID {
			upd.Apply(&p.Songs[i])
			cp := p.Songs[i]
			return &cp, nil
		}
	}
	return nil, errs.NotFound("Song not found")
}

func (f *fakeProjectRepo) DeleteSong(ctx context.Context, projectID, songID int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	p, ok := f.projects[projectID]
	if !ok {
		return errs.NotFound("Project not found")
	}
	for i := range p.Songs {
		if p.Songs[i].SongID == songID {
			p.Songs = append(p.Songs[:i], p.Songs[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("Song not found")
}

// fakeBeatRepo mirrors the beat repository semantics in memory.
type fakeBeatRepo struct {
	beats    map[int64]*model.Beat
	lastID   int64
	failWith error
}

func newFakeBeatRepo() *fakeBeatRepo {
	return &fakeBeatRepo{beats: map[int64]*model.Beat{}}
}

func (f *fakeBeatRepo) List(ctx context.Context) ([]*model.Beat, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]*model.Beat, 0, len(f.beats))
	for _, b := range f.beats {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBeatRepo) Create(ctx context.Context, b *model.Beat) error {
	if f.failWith != nil {
		return f.failWith
	}
	if err := b.Validate(); err != nil {
		return err
	}
	f.lastID++
	b.ID = f.lastID
	cp := *b
	f.beats[b.ID] = &cp
	return nil
}

func (f *fakeBeatRepo) Update(ctx context.Context, id int64, upd *model.BeatUpdate) (*model.Beat, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	b, ok := f.beats[id]
	if !ok {
		return nil, errs.NotFound("Beat not found")
	}
	upd.Apply(b)
	cp := *b
	return &cp, nil
}

func (f *fakeBeatRepo) Delete(ctx context.Context, id int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.beats[id]; !ok {
		return errs.NotFound("Beat not found")
	}
	delete(f.beats, id)
	return nil
}

// newTestHandler wires an APIHandler over the in-memory fakes with a
// ready store, no cache and no media backend.
func newTestHandler() (*APIHandler, *fakeProjectRepo, *fakeBeatRepo) {
	projectRepo := newFakeProjectRepo()
	beatRepo := newFakeBeatRepo()
	cfg := &config.Config{DefaultCoverURL: testDefaultCover}
	h := NewAPIHandler(projectRepo, beatRepo, nil, nil, cfg, func() bool { return true })
	return h, projectRepo, beatRepo
}
