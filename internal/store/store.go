// Package store holds the repositories the handlers are given at startup.
// Two backends implement them: Postgres through GORM and an in-process memory store.
package store

import (
	"context"
	"errors"

	"devconnect/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrConflict means every compare-and-set attempt lost against a concurrent writer.
	ErrConflict = errors.New("concurrent modification")
)

// MaxUpdateAttempts bounds the read-modify-write retries of Posts.Update.
const MaxUpdateAttempts = 3

// MutateFunc changes a post in place. Returning an error aborts the update
// and the error is passed through to the caller unchanged.
type MutateFunc func(p *models.Post) error

type Posts interface {
	Create(ctx context.Context, p *models.Post) error
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Update reads the post, applies fn and writes it back only if nobody
	// else wrote it in between; a lost race re-reads and re-applies fn.
	Update(ctx context.Context, id uuid.UUID, fn MutateFunc) (*models.Post, error)
}

type Users interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type Profiles interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	// Save inserts p, or replaces the existing profile of p.UserID.
	Save(ctx context.Context, p *models.Profile) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Posts    Posts
	Users    Users
	Profiles Profiles
}
