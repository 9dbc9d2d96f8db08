package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthor() *User {
	return &User{ID: uuid.New(), Name: "Ada", Avatar: "🐼"}
}

func TestNewPostSerializesEmptySequences(t *testing.T) {
	post := NewPost(newAuthor(), "hello")

	b, err := json.Marshal(post)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "hello", out["text"])
	assert.Equal(t, "Ada", out["name"])
	assert.Equal(t, []any{}, out["likes"])
	assert.Equal(t, []any{}, out["comments"])
	assert.NotContains(t, out, "Version")
}

func TestLikes(t *testing.T) {
	post := NewPost(newAuthor(), "hello")
	a, b := uuid.New(), uuid.New()

	post.AddLike(a)
	post.AddLike(b)
	assert.True(t, post.LikedBy(a))
	assert.Equal(t, b, post.Likes[0].User, "new likes go first")

	assert.True(t, post.RemoveLike(a))
	assert.False(t, post.LikedBy(a))
	assert.False(t, post.RemoveLike(a))
	assert.Len(t, post.Likes, 1)
}

func TestRemoveCommentByID(t *testing.T) {
	author := newAuthor()
	post := NewPost(author, "hello")

	// two comments by the same user: removal must use the comment id
	first := NewComment(author, "first")
	second := NewComment(author, "second")
	post.AddComment(first)
	post.AddComment(second)
	require.Equal(t, second.ID, post.Comments[0].ID)

	assert.True(t, post.RemoveComment(first.ID))
	require.Len(t, post.Comments, 1)
	assert.Equal(t, second.ID, post.Comments[0].ID)
	assert.Nil(t, post.FindComment(first.ID))
	assert.False(t, post.RemoveComment(first.ID))
}

func TestCloneIsIndependent(t *testing.T) {
	post := NewPost(newAuthor(), "hello")
	post.AddLike(uuid.New())

	cp := post.Clone()
	cp.AddLike(uuid.New())
	cp.RemoveLike(post.Likes[0].User)

	assert.Len(t, post.Likes, 1)
}
