package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devconnect/internal/models"
	"devconnect/internal/store"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProfileInput 是创建/更新 profile 的表单，空字段不写入
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string // 逗号分隔
	Bio            string
	GithubUsername string
	Social         models.Social
}

type ProfileService struct {
	profiles store.Profiles
}

func NewProfileService(profiles store.Profiles) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// SplitSkills turns "go, sql ,docker" into ["go", "sql", "docker"].
func SplitSkills(csv string) []string {
	skills := make([]string, 0)
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, err := s.profiles.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile of %s: %w", userID, err)
	}
	return p, nil
}

func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// Save creates the profile of userID or overwrites the fields given in in.
func (s *ProfileService) Save(ctx context.Context, userID uuid.UUID, in ProfileInput) (*models.Profile, error) {
	p, err := s.profiles.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		p = &models.Profile{ID: uuid.New(), UserID: userID}
	} else if err != nil {
		return nil, fmt.Errorf("get profile of %s: %w", userID, err)
	}

	setIf(&p.Company, in.Company)
	setIf(&p.Website, in.Website)
	setIf(&p.Location, in.Location)
	setIf(&p.Status, in.Status)
	setIf(&p.Bio, in.Bio)
	setIf(&p.GithubUsername, in.GithubUsername)
	if skills := SplitSkills(in.Skills); len(skills) > 0 {
		p.Skills = datatypes.JSONSlice[string](skills)
	}

	social := p.Social.Data()
	setIf(&social.YouTube, in.Social.YouTube)
	setIf(&social.Twitter, in.Social.Twitter)
	setIf(&social.Facebook, in.Social.Facebook)
	setIf(&social.LinkedIn, in.Social.LinkedIn)
	setIf(&social.Instagram, in.Social.Instagram)
	p.Social = datatypes.NewJSONType(social)

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile of %s: %w", userID, err)
	}

	// 重新读取以带上用户名和头像
	return s.Get(ctx, userID)
}

func setIf(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
