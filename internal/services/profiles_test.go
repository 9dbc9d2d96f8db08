package services

import (
	"context"
	"testing"

	"devconnect/internal/models"
	"devconnect/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"go", []string{"go"}},
		{"go, sql ,docker", []string{"go", "sql", "docker"}},
		{" ,go,, ", []string{"go"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitSkills(tt.in), "input %q", tt.in)
	}
}

func TestProfileSaveAndPartialUpdate(t *testing.T) {
	st := store.NewMemory()
	svc := NewProfileService(st.Profiles)
	ctx := context.Background()

	user := &models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", Avatar: "🦊"}
	require.NoError(t, st.Users.Create(ctx, user))

	_, err := svc.Get(ctx, user.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	p, err := svc.Save(ctx, user.ID, ProfileInput{
		Status:  "Developer",
		Skills:  "go, sql",
		Company: "Acme",
		Social:  models.Social{Twitter: "https://twitter.com/alice"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, []string{"go", "sql"}, []string(p.Skills))
	assert.Equal(t, "Alice", p.User.Name)
	assert.Equal(t, "🦊", p.User.Avatar)
	firstID := p.ID

	p, err = svc.Save(ctx, user.ID, ProfileInput{
		Status: "Senior Developer",
		Social: models.Social{LinkedIn: "https://linkedin.com/in/alice"},
	})
	require.NoError(t, err)
	assert.Equal(t, firstID, p.ID)
	assert.Equal(t, "Senior Developer", p.Status)
	assert.Equal(t, "Acme", p.Company, "empty fields keep their old value")
	assert.Equal(t, []string{"go", "sql"}, []string(p.Skills))
	social := p.Social.Data()
	assert.Equal(t, "https://twitter.com/alice", social.Twitter)
	assert.Equal(t, "https://linkedin.com/in/alice", social.LinkedIn)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
