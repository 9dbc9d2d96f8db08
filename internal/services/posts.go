package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"devconnect/internal/models"
	"devconnect/internal/store"
	"devconnect/internal/utils"

	"github.com/google/uuid"
)

// PostService 帖子、点赞、评论的业务规则
type PostService struct {
	posts store.Posts
	users store.Users
	cache *utils.Cache[models.Post]

	// gen 每次写操作后递增；Get 只有在读库期间 gen 未变时才回填缓存
	mu  sync.Mutex
	gen uint64
}

func NewPostService(posts store.Posts, users store.Users, cache *utils.Cache[models.Post]) *PostService {
	return &PostService{posts: posts, users: users, cache: cache}
}

func postCacheKey(id uuid.UUID) string {
	return "post:" + id.String()
}

func (s *PostService) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// fill caches post unless a write finished after gen was taken.
func (s *PostService) fill(gen uint64, post *models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.cache.Set(postCacheKey(post.ID), *post.Clone())
	}
}

// evict drops the cached copy of id and invalidates fills already in flight.
func (s *PostService) evict(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.cache.Delete(postCacheKey(id))
}

// author loads the requester so name and avatar can be snapshotted.
func (s *PostService) author(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	return user, nil
}

func (s *PostService) Create(ctx context.Context, userID uuid.UUID, text string) (*models.Post, error) {
	user, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := models.NewPost(user, text)
	post.HTML = utils.RenderMarkdown(text)
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	if cached, ok := s.cache.Get(postCacheKey(id)); ok {
		return cached.Clone(), nil
	}

	gen := s.generation()
	post, err := s.posts.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}

	s.fill(gen, post)
	return post, nil
}

// Delete removes the post if userID owns it.
func (s *PostService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	post, err := s.posts.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("get post %s: %w", id, err)
	}

	if post.UserID != userID {
		return ErrNotAuthorized
	}

	err = s.posts.Delete(ctx, id)
	s.evict(id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

// mutate runs a read-modify-write on one post and evicts its cache entry.
func (s *PostService) mutate(ctx context.Context, id uuid.UUID, fn store.MutateFunc) (*models.Post, error) {
	post, err := s.posts.Update(ctx, id, fn)
	if err == nil {
		s.evict(id)
		return post, nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return nil, err
}

func (s *PostService) Like(ctx context.Context, userID, id uuid.UUID) ([]models.Like, error) {
	post, err := s.mutate(ctx, id, func(p *models.Post) error {
		if p.LikedBy(userID) {
			return ErrAlreadyLiked
		}
		p.AddLike(userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (s *PostService) Unlike(ctx context.Context, userID, id uuid.UUID) ([]models.Like, error) {
	post, err := s.mutate(ctx, id, func(p *models.Post) error {
		if !p.RemoveLike(userID) {
			return ErrNotLiked
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (s *PostService) AddComment(ctx context.Context, userID, id uuid.UUID, text string) ([]models.Comment, error) {
	user, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := models.NewComment(user, text)
	comment.HTML = utils.RenderMarkdown(text)

	post, err := s.mutate(ctx, id, func(p *models.Post) error {
		p.AddComment(comment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// DeleteComment removes the comment whose id matches, if userID wrote it.
func (s *PostService) DeleteComment(ctx context.Context, userID, id, commentID uuid.UUID) ([]models.Comment, error) {
	post, err := s.mutate(ctx, id, func(p *models.Post) error {
		c := p.FindComment(commentID)
		if c == nil {
			return ErrCommentNotFound
		}
		if c.UserID != userID {
			return ErrNotAuthorized
		}
		p.RemoveComment(commentID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}
