package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"devconnect/internal/models"

	"github.com/google/uuid"
)

// NewMemory returns repositories that keep everything in process memory.
// Used for local development (STORE=memory) and in tests.
func NewMemory() *Store {
	m := &memory{
		posts:    make(map[uuid.UUID]*models.Post),
		users:    make(map[uuid.UUID]*models.User),
		profiles: make(map[uuid.UUID]*models.Profile),
	}
	return &Store{
		Posts:    &memoryPosts{m},
		Users:    &memoryUsers{m},
		Profiles: &memoryProfiles{m},
	}
}

type memory struct {
	mu       sync.RWMutex
	posts    map[uuid.UUID]*models.Post
	users    map[uuid.UUID]*models.User
	profiles map[uuid.UUID]*models.Profile // keyed by user id
}

type memoryPosts struct{ *memory }

func (s *memoryPosts) Create(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[p.ID]; ok {
		return fmt.Errorf("%w: post %s", ErrDuplicate, p.ID)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Version == 0 {
		p.Version = 1
	}
	p.Normalize()
	s.posts[p.ID] = p.Clone()
	return nil
}

func (s *memoryPosts) List(_ context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, *p.Clone())
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *memoryPosts) Get(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (s *memoryPosts) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *memoryPosts) Update(ctx context.Context, id uuid.UUID, fn MutateFunc) (*models.Post, error) {
	for attempt := 1; attempt <= MaxUpdateAttempts; attempt++ {
		post, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		version := post.Version
		if err := fn(post); err != nil {
			return nil, err
		}
		post.Normalize()

		if s.compareAndSwap(id, version, post) {
			return post.Clone(), nil
		}
	}
	return nil, ErrConflict
}

// compareAndSwap stores post only if the stored version still equals version.
func (s *memoryPosts) compareAndSwap(id uuid.UUID, version int, post *models.Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.posts[id]
	if !ok || cur.Version != version {
		return false
	}
	post.Version = version + 1
	s.posts[id] = post.Clone()
	return true
}

type memoryUsers struct{ *memory }

func (s *memoryUsers) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("%w: email %s", ErrDuplicate, u.Email)
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memoryUsers) Get(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

type memoryProfiles struct{ *memory }

// withUser fills the user summary; callers hold at least the read lock.
func (s *memoryProfiles) withUser(p *models.Profile) models.Profile {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	if u, ok := s.users[p.UserID]; ok {
		cp.User = models.ProfileUser{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	}
	return cp
}

func (s *memoryProfiles) GetByUser(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := s.withUser(p)
	return &cp, nil
}

func (s *memoryProfiles) List(_ context.Context) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, s.withUser(p))
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})
	return profiles, nil
}

func (s *memoryProfiles) Save(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.profiles[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	s.profiles[p.UserID] = &cp
	return nil
}
