package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/zacxu/internship_hub/internal/model"
)

// WithdrawalStore persists withdrawal-request snapshots.
type WithdrawalStore interface {
	LoadAll(ctx context.Context) ([]*model.WithdrawalRequest, error)
	ReplaceAll(ctx context.Context, requests []*model.WithdrawalRequest) error
}

const withdrawalIDPrefix = "WR"

type WithdrawalRegistry struct {
	items map[string]*model.WithdrawalRequest
	seq   *sequence
	store WithdrawalStore
}

func NewWithdrawalRegistry(store WithdrawalStore) *WithdrawalRegistry {
	return &WithdrawalRegistry{
		items: make(map[string]*model.WithdrawalRequest),
		seq:   newSequence(withdrawalIDPrefix),
		store: store,
	}
}

func (r *WithdrawalRegistry) Load(ctx context.Context) error {
	requests, err := r.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load withdrawal requests: %w", err)
	}
	r.items = make(map[string]*model.WithdrawalRequest, len(requests))
	r.seq.reset()
	for _, request := range requests {
		r.items[request.ID] = request
		r.seq.observe(request.ID)
	}
	return nil
}

func (r *WithdrawalRegistry) Save(ctx context.Context) error {
	if err := r.store.ReplaceAll(ctx, r.All()); err != nil {
		return fmt.Errorf("save withdrawal requests: %w", err)
	}
	return nil
}

func (r *WithdrawalRegistry) NextID() string {
	return r.seq.nextID()
}

func (r *WithdrawalRegistry) GetByID(id string) *model.WithdrawalRequest {
	return r.items[id]
}

func (r *WithdrawalRegistry) Add(request *model.WithdrawalRequest) {
	r.items[request.ID] = request
}

func (r *WithdrawalRegistry) Count() int {
	return len(r.items)
}

// HasPendingForApplication reports whether any pending request already
// targets the application. At most one may exist at a time.
func (r *WithdrawalRegistry) HasPendingForApplication(applicationID string) bool {
	for _, request := range r.items {
		if request.ApplicationID == applicationID && request.IsPending() {
			return true
		}
	}
	return false
}

func (r *WithdrawalRegistry) All() []*model.WithdrawalRequest {
	return r.filter(func(*model.WithdrawalRequest) bool { return true })
}

func (r *WithdrawalRegistry) ByStudent(studentID string) []*model.WithdrawalRequest {
	return r.filter(func(w *model.WithdrawalRequest) bool { return w.StudentID == studentID })
}

func (r *WithdrawalRegistry) Pending() []*model.WithdrawalRequest {
	return r.filter(func(w *model.WithdrawalRequest) bool { return w.IsPending() })
}

func (r *WithdrawalRegistry) filter(keep func(*model.WithdrawalRequest) bool) []*model.WithdrawalRequest {
	var result []*model.WithdrawalRequest
	for _, request := range r.items {
		if keep(request) {
			result = append(result, request)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].ID < result[b].ID })
	return result
}
