package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio/internal/db"
	"portfolio/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.NewSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func TestAdminRepository_FindByUsername(t *testing.T) {
	repo := NewAdminRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Admin{Username: "owner", PasswordHash: "hash"}))

	admin, err := repo.FindByUsername(ctx, "owner")
	require.NoError(t, err)
	assert.NotEmpty(t, admin.ID)
	assert.Equal(t, "hash", admin.PasswordHash)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.Error(t, repo.Create(ctx, &model.Admin{Username: "owner", PasswordHash: "other"}))
}

func TestSkillRepository_ListOrdering(t *testing.T) {
	repo := NewSkillRepository(newTestDB(t))
	ctx := context.Background()

	late := &model.Skill{Name: "Late", Description: "d", IconURL: "u", Type: model.SkillTypeImage, Color: "c", Category: "Backend", Order: 2}
	first := &model.Skill{Name: "First", Description: "d", IconURL: "u", Type: model.SkillTypeImage, Color: "c", Category: "Backend", Order: 0}
	second := &model.Skill{Name: "Second", Description: "d", IconURL: "u", Type: model.SkillTypeImage, Color: "c", Category: "Backend", Order: 0}

	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, first))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.Create(ctx, second))

	skills, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 3)
	assert.Equal(t, []string{"First", "Second", "Late"}, []string{skills[0].Name, skills[1].Name, skills[2].Name})

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSkillRepository_UpdateAndDelete(t *testing.T) {
	repo := NewSkillRepository(newTestDB(t))
	ctx := context.Background()

	skill := &model.Skill{Name: "Go", Description: "d", IconURL: "u", Type: model.SkillTypeImage, Color: "c", Category: "Backend"}
	require.NoError(t, repo.Create(ctx, skill))

	skill.Name = "Golang"
	skill.Order = 4
	require.NoError(t, repo.Update(ctx, skill))

	got, err := repo.FindByID(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Golang", got.Name)
	assert.Equal(t, 4, got.Order)

	// Unknown IDs are a silent no-op for both update and delete.
	require.NoError(t, repo.Update(ctx, &model.Skill{ID: "missing", Name: "x"}))
	require.NoError(t, repo.Delete(ctx, "missing"))

	require.NoError(t, repo.Delete(ctx, skill.ID))
	_, err = repo.FindByID(ctx, skill.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectRepository_TechnologiesRoundTrip(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewProjectRepository(gormDB)
	ctx := context.Background()

	project := &model.Project{
		Title:        "API",
		Description:  "d",
		Gradient:     model.DefaultGradient,
		Featured:     false,
		Technologies: []string{"Go", "Postgres", "Redis"},
	}
	require.NoError(t, repo.Create(ctx, project))

	got, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Postgres", "Redis"}, got.Technologies)
	assert.False(t, got.Featured)
	assert.Nil(t, got.ProjectURL)

	url := "https://example.com"
	got.Technologies = []string{"Rust", "Go"}
	got.ProjectURL = &url
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust", "Go"}, updated.Technologies)
	require.NotNil(t, updated.ProjectURL)
	assert.Equal(t, url, *updated.ProjectURL)

	var rows int64
	require.NoError(t, gormDB.Model(&model.ProjectTechnology{}).Count(&rows).Error)
	assert.Equal(t, int64(2), rows)

	require.NoError(t, repo.Delete(ctx, project.ID))
	require.NoError(t, gormDB.Model(&model.ProjectTechnology{}).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectRepository_UpdateUnknownWritesNothing(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewProjectRepository(gormDB)

	err := repo.Update(context.Background(), &model.Project{ID: "missing", Title: "t", Technologies: []string{"Go"}})
	require.NoError(t, err)

	var rows int64
	require.NoError(t, gormDB.Model(&model.ProjectTechnology{}).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}

func TestInfoRepository_UpsertKeepsOneRowPerKey(t *testing.T) {
	gormDB := newTestDB(t)
	about := NewAboutInfoRepository(gormDB)
	contact := NewContactInfoRepository(gormDB)
	ctx := context.Background()

	require.NoError(t, about.Upsert(ctx, "bio", "first"))
	require.NoError(t, about.Upsert(ctx, "bio", "second"))
	require.NoError(t, about.Upsert(ctx, "location", "Dhaka"))
	require.NoError(t, contact.Upsert(ctx, "bio", "contact table is separate"))

	entries, err := about.All(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.InfoEntry{Key: "bio", Value: "second"}, entries[0])
	assert.Equal(t, model.InfoEntry{Key: "location", Value: "Dhaka"}, entries[1])

	var rows int64
	require.NoError(t, gormDB.Model(&model.AboutInfo{}).Where("info_key = ?", "bio").Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	contactEntries, err := contact.All(ctx)
	require.NoError(t, err)
	assert.Len(t, contactEntries, 1)
}

func TestMessageRepository(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	older := &model.Message{Name: "A", Email: "a@example.com", Message: "hi"}
	require.NoError(t, repo.Create(ctx, older))
	time.Sleep(5 * time.Millisecond)
	newer := &model.Message{Name: "B", Email: "b@example.com", Message: "hello"}
	require.NoError(t, repo.Create(ctx, newer))

	messages, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, newer.ID, messages[0].ID)
	assert.False(t, messages[0].Read)

	require.NoError(t, repo.UpdateRead(ctx, older.ID, true))
	got, err := repo.FindByID(ctx, older.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	require.NoError(t, repo.Delete(ctx, "missing"))
	require.NoError(t, repo.Delete(ctx, older.ID))
	messages, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}
