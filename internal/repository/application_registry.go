package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/zacxu/internship_hub/internal/model"
)

// ApplicationStore persists application snapshots.
type ApplicationStore interface {
	LoadAll(ctx context.Context) ([]*model.Application, error)
	ReplaceAll(ctx context.Context, applications []*model.Application) error
}

const applicationIDPrefix = "APP"

// ApplicationRegistry holds every application in memory. Locking is
// the engine's job, same as the other registries.
type ApplicationRegistry struct {
	items map[string]*model.Application
	seq   *sequence
	store ApplicationStore
}

func NewApplicationRegistry(store ApplicationStore) *ApplicationRegistry {
	return &ApplicationRegistry{
		items: make(map[string]*model.Application),
		seq:   newSequence(applicationIDPrefix),
		store: store,
	}
}

func (r *ApplicationRegistry) Load(ctx context.Context) error {
	applications, err := r.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load applications: %w", err)
	}
	r.items = make(map[string]*model.Application, len(applications))
	r.seq.reset()
	for _, application := range applications {
		r.items[application.ID] = application
		r.seq.observe(application.ID)
	}
	return nil
}

func (r *ApplicationRegistry) Save(ctx context.Context) error {
	if err := r.store.ReplaceAll(ctx, r.All()); err != nil {
		return fmt.Errorf("save applications: %w", err)
	}
	return nil
}

func (r *ApplicationRegistry) NextID() string {
	return r.seq.nextID()
}

func (r *ApplicationRegistry) GetByID(id string) *model.Application {
	return r.items[id]
}

func (r *ApplicationRegistry) Add(application *model.Application) {
	r.items[application.ID] = application
}

func (r *ApplicationRegistry) Remove(id string) {
	delete(r.items, id)
}

func (r *ApplicationRegistry) Count() int {
	return len(r.items)
}

func (r *ApplicationRegistry) All() []*model.Application {
	return r.filter(func(*model.Application) bool { return true })
}

func (r *ApplicationRegistry) ByStudent(studentID string) []*model.Application {
	return r.filter(func(a *model.Application) bool { return a.StudentID == studentID })
}

func (r *ApplicationRegistry) ByInternship(internshipID string) []*model.Application {
	return r.filter(func(a *model.Application) bool { return a.InternshipID == internshipID })
}

func (r *ApplicationRegistry) ByStatus(status model.ApplicationStatus) []*model.Application {
	return r.filter(func(a *model.Application) bool { return a.Status == status })
}

func (r *ApplicationRegistry) filter(keep func(*model.Application) bool) []*model.Application {
	var result []*model.Application
	for _, application := range r.items {
		if keep(application) {
			result = append(result, application)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].ID < result[b].ID })
	return result
}
