package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/uwrite-api/models"
)

// PublicOwner is the owner summary shown to readers
type PublicOwner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PublicChapter is a published chapter as shown to readers
type PublicChapter struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Index       int        `json:"index"`
	ContentHTML string     `json:"contentHtml"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// PublicProject is the published-only projection of a public project
type PublicProject struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Synopsis     *string         `json:"synopsis"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	Owner        PublicOwner     `json:"owner"`
	ChapterCount int             `json:"chapterCount"`
	Chapters     []PublicChapter `json:"chapters"`
}

// NewPublicProject projects a project whose Owner and published Chapters are
// loaded. withChapterDates adds each chapter's creation time.
func NewPublicProject(p models.Project, withChapterDates bool) PublicProject {
	chapters := lo.Map(p.Chapters, func(c models.Chapter, _ int) PublicChapter {
		out := PublicChapter{ID: c.ID, Title: c.Title, Index: c.Index, ContentHTML: c.ContentHTML}
		if withChapterDates {
			createdAt := c.CreatedAt
			out.CreatedAt = &createdAt
		}
		return out
	})
	return PublicProject{
		ID:           p.ID,
		Title:        p.Title,
		Synopsis:     p.Synopsis,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Owner:        PublicOwner{ID: p.Owner.ID, Name: p.Owner.Name},
		ChapterCount: len(chapters),
		Chapters:     chapters,
	}
}
