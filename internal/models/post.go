package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Post 帖子。点赞和评论以 JSONB 数组存在同一行里，所有变更都是单行读-改-写
type Post struct {
	ID        uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID                    `gorm:"type:uuid;not null;index" json:"user"`
	Text      string                       `gorm:"type:text;not null" json:"text"`
	HTML      string                       `gorm:"type:text" json:"html"`
	Name      string                       `gorm:"not null" json:"name"`
	Avatar    string                       `json:"avatar"`
	Likes     datatypes.JSONSlice[Like]    `gorm:"not null" json:"likes"`
	Comments  datatypes.JSONSlice[Comment] `gorm:"not null" json:"comments"`
	Version   int                          `gorm:"not null;default:1" json:"-"` // 乐观锁版本号
	CreatedAt time.Time                    `gorm:"index" json:"date"`
}

// NewPost builds a post with empty like and comment sequences.
func NewPost(author *User, text string) *Post {
	return &Post{
		ID:       uuid.New(),
		UserID:   author.ID,
		Text:     text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    datatypes.JSONSlice[Like]{},
		Comments: datatypes.JSONSlice[Comment]{},
	}
}

// Normalize replaces nil sequences with empty ones so they serialize as [].
func (p *Post) Normalize() {
	if p.Likes == nil {
		p.Likes = datatypes.JSONSlice[Like]{}
	}
	if p.Comments == nil {
		p.Comments = datatypes.JSONSlice[Comment]{}
	}
}

// Clone returns a copy that shares no slices with p.
func (p *Post) Clone() *Post {
	cp := *p
	cp.Likes = append(datatypes.JSONSlice[Like]{}, p.Likes...)
	cp.Comments = append(datatypes.JSONSlice[Comment]{}, p.Comments...)
	return &cp
}

// LikedBy reports whether userID already liked the post.
func (p *Post) LikedBy(userID uuid.UUID) bool {
	return p.likeIndex(userID) >= 0
}

func (p *Post) likeIndex(userID uuid.UUID) int {
	for i, l := range p.Likes {
		if l.User == userID {
			return i
		}
	}
	return -1
}

// AddLike prepends a like by userID. Callers check LikedBy first.
func (p *Post) AddLike(userID uuid.UUID) {
	p.Likes = append(datatypes.JSONSlice[Like]{{User: userID}}, p.Likes...)
}

// RemoveLike drops the first like by userID and reports whether one was found.
func (p *Post) RemoveLike(userID uuid.UUID) bool {
	i := p.likeIndex(userID)
	if i < 0 {
		return false
	}
	p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
	return true
}

// AddComment prepends c to the comment sequence.
func (p *Post) AddComment(c Comment) {
	p.Comments = append(datatypes.JSONSlice[Comment]{c}, p.Comments...)
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(id uuid.UUID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

// RemoveComment drops the comment whose id matches.
func (p *Post) RemoveComment(id uuid.UUID) bool {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}
