package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Social 社交链接，整体存成 JSONB
type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Profile struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID                   `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	User           ProfileUser                 `gorm:"-" json:"user"` // 查询时填充
	Company        string                      `json:"company,omitempty"`
	Website        string                      `json:"website,omitempty"`
	Location       string                      `json:"location,omitempty"`
	Status         string                      `gorm:"not null" json:"status"`
	Skills         datatypes.JSONSlice[string] `gorm:"not null" json:"skills"`
	Bio            string                      `gorm:"type:text" json:"bio,omitempty"`
	GithubUsername string                      `json:"githubusername,omitempty"`
	Social         datatypes.JSONType[Social]  `json:"social"`
	CreatedAt      time.Time                   `json:"date"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// ProfileUser 是 profile 响应里附带的用户摘要
type ProfileUser struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}
