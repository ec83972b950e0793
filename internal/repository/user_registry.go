package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/zacxu/internship_hub/internal/model"
)

// UserStore persists user snapshots (students, company representatives
// and career center staff together).
type UserStore interface {
	LoadAll(ctx context.Context) ([]model.User, error)
	ReplaceAll(ctx context.Context, users []model.User) error
}

// UserRegistry holds every actor in memory. User ids come from the
// enrolment systems upstream, so there is no id sequence here.
type UserRegistry struct {
	items map[string]model.User
	store UserStore
}

func NewUserRegistry(store UserStore) *UserRegistry {
	return &UserRegistry{
		items: make(map[string]model.User),
		store: store,
	}
}

func (r *UserRegistry) Load(ctx context.Context) error {
	users, err := r.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	r.items = make(map[string]model.User, len(users))
	for _, user := range users {
		r.items[user.UserID()] = user
	}
	return nil
}

func (r *UserRegistry) Save(ctx context.Context) error {
	if err := r.store.ReplaceAll(ctx, r.All()); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (r *UserRegistry) GetByID(id string) model.User {
	return r.items[id]
}

// Student returns the student with the given id, or nil if the id is
// unknown or belongs to another role.
func (r *UserRegistry) Student(id string) *model.Student {
	student, _ := r.items[id].(*model.Student)
	return student
}

func (r *UserRegistry) CompanyRep(id string) *model.CompanyRepresentative {
	rep, _ := r.items[id].(*model.CompanyRepresentative)
	return rep
}

func (r *UserRegistry) Add(user model.User) {
	r.items[user.UserID()] = user
}

func (r *UserRegistry) All() []model.User {
	result := make([]model.User, 0, len(r.items))
	for _, user := range r.items {
		result = append(result, user)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].UserID() < result[b].UserID() })
	return result
}

func (r *UserRegistry) Students() []*model.Student {
	var result []*model.Student
	for _, user := range r.items {
		if student, ok := user.(*model.Student); ok {
			result = append(result, student)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].ID < result[b].ID })
	return result
}
