package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/zacxu/internship_hub/internal/model"
)

// InternshipStore persists internship snapshots. The registry itself
// is the in-memory source of truth; the store is written behind it,
// best effort.
type InternshipStore interface {
	LoadAll(ctx context.Context) ([]*model.Internship, error)
	ReplaceAll(ctx context.Context, internships []*model.Internship) error
}

const internshipIDPrefix = "INT"

// InternshipRegistry holds every internship in memory. It does no
// locking of its own: all access runs inside the engine's critical
// section, because cascades touch several registries at once.
type InternshipRegistry struct {
	items map[string]*model.Internship
	seq   *sequence
	store InternshipStore
}

func NewInternshipRegistry(store InternshipStore) *InternshipRegistry {
	return &InternshipRegistry{
		items: make(map[string]*model.Internship),
		seq:   newSequence(internshipIDPrefix),
		store: store,
	}
}

// Load replaces the in-memory state with the store's contents and
// re-derives the id sequence from the loaded ids.
func (r *InternshipRegistry) Load(ctx context.Context) error {
	internships, err := r.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load internships: %w", err)
	}
	r.items = make(map[string]*model.Internship, len(internships))
	r.seq.reset()
	for _, internship := range internships {
		r.items[internship.ID] = internship
		r.seq.observe(internship.ID)
	}
	return nil
}

// Save writes the current in-memory state through to the store.
func (r *InternshipRegistry) Save(ctx context.Context) error {
	if err := r.store.ReplaceAll(ctx, r.snapshot()); err != nil {
		return fmt.Errorf("save internships: %w", err)
	}
	return nil
}

func (r *InternshipRegistry) NextID() string {
	return r.seq.nextID()
}

// GetByID returns the live entity, or nil. Callers hold the engine
// lock; anything handed outside it must be cloned first.
func (r *InternshipRegistry) GetByID(id string) *model.Internship {
	return r.items[id]
}

func (r *InternshipRegistry) Add(internship *model.Internship) {
	r.items[internship.ID] = internship
}

func (r *InternshipRegistry) Remove(id string) {
	delete(r.items, id)
}

func (r *InternshipRegistry) Count() int {
	return len(r.items)
}

// All returns every internship ordered by id.
func (r *InternshipRegistry) All() []*model.Internship {
	return r.filter(func(*model.Internship) bool { return true })
}

func (r *InternshipRegistry) ByCompanyRep(repID string) []*model.Internship {
	return r.filter(func(i *model.Internship) bool { return i.CompanyRepID == repID })
}

func (r *InternshipRegistry) ByStatus(status model.InternshipStatus) []*model.Internship {
	return r.filter(func(i *model.Internship) bool { return i.Status == status })
}

func (r *InternshipRegistry) Visible() []*model.Internship {
	return r.filter(func(i *model.Internship) bool { return i.Visible })
}

func (r *InternshipRegistry) filter(keep func(*model.Internship) bool) []*model.Internship {
	var result []*model.Internship
	for _, internship := range r.items {
		if keep(internship) {
			result = append(result, internship)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].ID < result[b].ID })
	return result
}

func (r *InternshipRegistry) snapshot() []*model.Internship {
	return r.All()
}
