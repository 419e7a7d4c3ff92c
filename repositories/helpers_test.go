package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uwrite-api/database"
	"github.com/uwrite-api/models"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user, err := NewUserRepository(db).Create(context.Background(), models.User{
		Email:        email,
		PasswordHash: "x",
		Name:         email,
	})
	require.NoError(t, err)
	return user
}

func seedProject(t *testing.T, db *gorm.DB, ownerID string, visibility models.Visibility) models.Project {
	t.Helper()
	project, err := NewProjectRepository(db).Create(context.Background(), models.Project{
		OwnerID:    ownerID,
		Title:      "Project",
		Visibility: visibility,
	})
	require.NoError(t, err)
	return project
}

func appendChapters(t *testing.T, repo *ChapterRepository, projectID string, titles ...string) []models.Chapter {
	t.Helper()
	chapters := make([]models.Chapter, 0, len(titles))
	for _, title := range titles {
		chapter := models.Chapter{ProjectID: projectID, Title: title}
		require.NoError(t, repo.Append(context.Background(), &chapter))
		chapters = append(chapters, chapter)
	}
	return chapters
}

// indexByTitle reads the current index of every chapter of the project
func indexByTitle(t *testing.T, repo *ChapterRepository, projectID string) map[string]int {
	t.Helper()
	chapters, err := repo.ListByProject(context.Background(), projectID)
	require.NoError(t, err)
	out := make(map[string]int, len(chapters))
	for _, c := range chapters {
		out[c.Title] = c.Index
	}
	return out
}

// requireContiguous asserts the indices are exactly 0..n-1
func requireContiguous(t *testing.T, repo *ChapterRepository, projectID string) {
	t.Helper()
	chapters, err := repo.ListByProject(context.Background(), projectID)
	require.NoError(t, err)
	for i, c := range chapters {
		require.Equal(t, i, c.Index, "chapter %s", c.Title)
	}
}
