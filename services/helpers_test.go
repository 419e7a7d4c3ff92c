package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uwrite-api/database"
	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/lib/cache"
	"github.com/uwrite-api/lib/metrics"
	"github.com/uwrite-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	svc   *Services
	cache cache.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithCache(t, cache.NewMemoryStore(time.Minute))
}

func newFixtureWithCache(t *testing.T, store cache.Store) *fixture {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	tokens, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	return &fixture{
		db:    db,
		cache: store,
		svc: New(Dependencies{
			DB:         db,
			Tokens:     tokens,
			Cache:      store,
			Metrics:    metrics.New(),
			BcryptCost: bcrypt.MinCost,
		}),
	}
}

func (f *fixture) user(t *testing.T, email string) models.User {
	t.Helper()
	user, err := f.svc.Auth.Register(context.Background(), dto.RegisterRequest{
		Email:    email,
		Password: "secret1",
		Name:     "Writer " + email,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) project(t *testing.T, ownerID string, visibility models.Visibility) models.Project {
	t.Helper()
	v := string(visibility)
	project, err := f.svc.Projects.CreateProject(context.Background(), ownerID, dto.CreateProjectRequest{
		Title:      "A Novel",
		Visibility: &v,
	})
	require.NoError(t, err)
	return project
}

func (f *fixture) chapter(t *testing.T, ownerID, projectID, title string, status models.ChapterStatus) models.Chapter {
	t.Helper()
	s := string(status)
	chapter, err := f.svc.Chapters.CreateChapter(context.Background(), ownerID, dto.CreateChapterRequest{
		ProjectID: projectID,
		Title:     title,
		Status:    &s,
	})
	require.NoError(t, err)
	return chapter
}

func (f *fixture) indexes(t *testing.T, ownerID, projectID string) map[string]int {
	t.Helper()
	chapters, err := f.svc.Chapters.ListChapters(context.Background(), ownerID, projectID)
	require.NoError(t, err)
	out := make(map[string]int, len(chapters))
	for i, c := range chapters {
		require.Equal(t, i, c.Index)
		out[c.Title] = c.Index
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
