package store

import (
	"context"
	"errors"
	"fmt"

	"devconnect/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// NewGorm returns repositories backed by db.
func NewGorm(db *gorm.DB) *Store {
	return &Store{
		Posts:    &gormPosts{db: db},
		Users:    &gormUsers{db: db},
		Profiles: &gormProfiles{db: db},
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

type gormPosts struct {
	db *gorm.DB
}

func (s *gormPosts) Create(ctx context.Context, p *models.Post) error {
	p.Normalize()
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *gormPosts) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}

func (s *gormPosts) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, translate(err)
	}
	post.Normalize()
	return &post, nil
}

func (s *gormPosts) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormPosts) Update(ctx context.Context, id uuid.UUID, fn MutateFunc) (*models.Post, error) {
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

		// 版本号不变才写入，否则说明其他请求先改过，重读重试
		res := casUpdate(s.db.WithContext(ctx), version, post)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			post.Version = version + 1
			return post, nil
		}
	}
	return nil, ErrConflict
}

// casUpdate writes likes and comments of p only if the row is still at version.
func casUpdate(tx *gorm.DB, version int, p *models.Post) *gorm.DB {
	return tx.Model(&models.Post{}).
		Where("id = ? AND version = ?", p.ID, version).
		Updates(map[string]interface{}{
			"likes":    p.Likes,
			"comments": p.Comments,
			"version":  gorm.Expr("version + 1"),
		})
}

type gormUsers struct {
	db *gorm.DB
}

func (s *gormUsers) Create(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *gormUsers) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

type gormProfiles struct {
	db *gorm.DB
}

// profileRow 用于 profile 与 user 的联表查询
type profileRow struct {
	models.Profile
	UserName   string
	UserAvatar string
}

func (r profileRow) toProfile() models.Profile {
	p := r.Profile
	p.User = models.ProfileUser{ID: p.UserID, Name: r.UserName, Avatar: r.UserAvatar}
	return p
}

func (s *gormProfiles) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Profile{}).
		Select("profiles.*, users.name AS user_name, users.avatar AS user_avatar").
		Joins("JOIN users ON users.id = profiles.user_id")
}

func (s *gormProfiles) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var row profileRow
	if err := s.query(ctx).Where("profiles.user_id = ?", userID).Take(&row).Error; err != nil {
		return nil, translate(err)
	}
	p := row.toProfile()
	return &p, nil
}

func (s *gormProfiles) List(ctx context.Context) ([]models.Profile, error) {
	var rows []profileRow
	if err := s.query(ctx).Order("profiles.created_at ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	profiles := make([]models.Profile, len(rows))
	for i, r := range rows {
		profiles[i] = r.toProfile()
	}
	return profiles, nil
}

func (s *gormProfiles) Save(ctx context.Context, p *models.Profile) error {
	return translate(upsertProfile(s.db.WithContext(ctx), p).Error)
}

// upsertProfile inserts p or overwrites the editable columns of the row with the same user_id.
func upsertProfile(tx *gorm.DB, p *models.Profile) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company", "website", "location", "status", "skills",
			"bio", "github_username", "social", "updated_at",
		}),
	}).Create(p)
}
