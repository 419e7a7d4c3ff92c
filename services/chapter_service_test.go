package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/models"
)

func TestCreateChapterAppendsInOrder(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")
	project := f.project(t, owner.ID, models.VisibilityPrivate)

	for i, title := range []string{"A", "B", "C"} {
		chapter := f.chapter(t, owner.ID, project.ID, title, models.ChapterStatusDraft)
		assert.Equal(t, i, chapter.Index)
		assert.Equal(t, models.ChapterStatusDraft, chapter.Status)
	}
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2}, f.indexes(t, owner.ID, project.ID))
}

func TestCreateChapterDefaultsToDraftAndRendersContent(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")
	project := f.project(t, owner.ID, models.VisibilityPrivate)

	doc := json.RawMessage(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Once upon a time"}]}]}`)
	chapter, err := f.svc.Chapters.CreateChapter(context.Background(), owner.ID, dto.CreateChapterRequest{
		ProjectID: project.ID,
		Title:     "  Opening  ",
		Content:   doc,
	})
	require.NoError(t, err)
	assert.Equal(t, "Opening", chapter.Title)
	assert.Equal(t, models.ChapterStatusDraft, chapter.Status)
	assert.Equal(t, "<p>Once upon a time</p>", chapter.ContentHTML)
	assert.Equal(t, "Once upon a time", chapter.ContentText)
}

func TestCreateChapterRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	project := f.project(t, owner.ID, models.VisibilityPublic)

	_, err := f.svc.Chapters.CreateChapter(ctx, "", dto.CreateChapterRequest{ProjectID: project.ID, Title: "x"})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.Chapters.CreateChapter(ctx, other.ID, dto.CreateChapterRequest{ProjectID: project.ID, Title: "x"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Chapters.CreateChapter(ctx, owner.ID, dto.CreateChapterRequest{ProjectID: "missing", Title: "x"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Chapters.CreateChapter(ctx, owner.ID, dto.CreateChapterRequest{ProjectID: project.ID, Title: "   "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Details, "title")

	_, err = f.svc.Chapters.CreateChapter(ctx, owner.ID, dto.CreateChapterRequest{
		ProjectID: project.ID, Title: "x", Content: json.RawMessage(`"plain"`),
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Details, "content")

	_, err = f.svc.Chapters.CreateChapter(ctx, owner.ID, dto.CreateChapterRequest{
		ProjectID: project.ID, Title: "x", Status: ptr("ARCHIVED"),
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Details, "status")

	assert.Empty(t, f.indexes(t, owner.ID, project.ID))
}

func TestUpdateChapterRegeneratesDerivedContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	project := f.project(t, owner.ID, models.VisibilityPrivate)
	chapter := f.chapter(t, owner.ID, project.ID, "A", models.ChapterStatusDraft)

	updated, err := f.svc.Chapters.UpdateChapter(ctx, owner.ID, chapter.ID, dto.UpdateChapterRequest{
		Content: json.RawMessage(`{"type":"doc","content":[{"type":"heading","attrs":{"level":1},"content":[{"type":"text","text":"Title"}]}]}`),
		Status:  ptr("published"),
	})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, "<h1>Title</h1>", updated.ContentHTML)
	assert.Equal(t, "Title", updated.ContentText)
	assert.Equal(t, models.ChapterStatusPublished, updated.Status)
	assert.Equal(t, chapter.Index, updated.Index)

	cleared, err := f.svc.Chapters.UpdateChapter(ctx, owner.ID, chapter.ID, dto.UpdateChapterRequest{
		Content: json.RawMessage(`null`),
	})
	require.NoError(t, err)
	assert.Empty(t, cleared.ContentHTML)
	assert.Empty(t, cleared.ContentText)
}

func TestUpdateChapterRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	project := f.project(t, owner.ID, models.VisibilityPrivate)
	chapter := f.chapter(t, owner.ID, project.ID, "A", models.ChapterStatusDraft)

	_, err := f.svc.Chapters.UpdateChapter(ctx, other.ID, chapter.ID, dto.UpdateChapterRequest{Title: ptr("B")})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Chapters.UpdateChapter(ctx, "", chapter.ID, dto.UpdateChapterRequest{Title: ptr("B")})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.Chapters.UpdateChapter(ctx, owner.ID, "missing", dto.UpdateChapterRequest{Title: ptr("B")})
	assert.ErrorIs(t, err, ErrNotFound)

	var verr *ValidationError
	_, err = f.svc.Chapters.UpdateChapter(ctx, owner.ID, chapter.ID, dto.UpdateChapterRequest{})
	require.ErrorAs(t, err, &verr)

	_, err = f.svc.Chapters.UpdateChapter(ctx, owner.ID, chapter.ID, dto.UpdateChapterRequest{Title: ptr(" ")})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Details, "title")

	got, err := f.svc.Chapters.GetChapter(ctx, owner.ID, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestReorderChapters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	project := f.project(t, owner.ID, models.VisibilityPrivate)
	a := f.chapter(t, owner.ID, project.ID, "A", models.ChapterStatusDraft)
	b := f.chapter(t, owner.ID, project.ID, "B", models.ChapterStatusDraft)
	c := f.chapter(t, owner.ID, project.ID, "C", models.ChapterStatusDraft)

	err := f.svc.Chapters.ReorderChapters(ctx, owner.ID, dto.ReorderChaptersRequest{
		ProjectID:         project.ID,
		OrderedChapterIDs: []string{c.ID, a.ID, b.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"C": 0, "A": 1, "B": 2}, f.indexes(t, owner.ID, project.ID))
}

func TestReorderChaptersRejectsMismatchWithoutWriting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	project := f.project(t, owner.ID, models.VisibilityPrivate)
	a := f.chapter(t, owner.ID, project.ID, "A", models.ChapterStatusDraft)
	f.chapter(t, owner.ID, project.ID, "B", models.ChapterStatusDraft)
	c := f.chapter(t, owner.ID, project.ID, "C", models.ChapterStatusDraft)

	other := f.project(t, owner.ID, models.VisibilityPrivate)
	foreign := f.chapter(t, owner.ID, other.ID, "X", models.ChapterStatusDraft)

	cases := map[string][]string{
		"missing":   {c.ID, a.ID},
		"duplicate": {c.ID, a.ID, a.ID},
		"foreign":   {c.ID, a.ID, foreign.ID},
	}
	for name, ids := range cases {
		err := f.svc.Chapters.ReorderChapters(ctx, owner.ID, dto.ReorderChaptersRequest{
			ProjectID:         project.ID,
			OrderedChapterIDs: ids,
		})
		assert.ErrorIs(t, err, ErrInvalidOrder, name)
	}

	var verr *ValidationError
	err := f.svc.Chapters.ReorderChapters(ctx, owner.ID, dto.ReorderChaptersRequest{ProjectID: project.ID})
	require.ErrorAs(t, err, &verr)

	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2}, f.indexes(t, owner.ID, project.ID))
}

func TestReorderChaptersRequiresOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	project := f.project(t, owner.ID, models.VisibilityPrivate)
	a := f.chapter(t, owner.ID, project.ID, "A", models.ChapterStatusDraft)

	err := f.svc.Chapters.ReorderChapters(ctx, other.ID, dto.ReorderChaptersRequest{
		ProjectID: project.ID, OrderedChapterIDs: []string{a.ID},
	})
	assert.ErrorIs(t, err, ErrForbidden)

	err = f.svc.Chapters.ReorderChapters(ctx, "", dto.ReorderChaptersRequest{
		ProjectID: project.ID, OrderedChapterIDs: []string{a.ID},
	})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDeleteChapterRenumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	project := f.project(t, owner.ID, models.VisibilityPrivate)
	f.chapter(t, owner.ID, project.ID, "A", models.ChapterStatusDraft)
	b := f.chapter(t, owner.ID, project.ID, "B", models.ChapterStatusDraft)
	f.chapter(t, owner.ID, project.ID, "C", models.ChapterStatusDraft)
	f.chapter(t, owner.ID, project.ID, "D", models.ChapterStatusDraft)

	assert.ErrorIs(t, f.svc.Chapters.DeleteChapter(ctx, other.ID, b.ID), ErrForbidden)
	assert.ErrorIs(t, f.svc.Chapters.DeleteChapter(ctx, "", b.ID), ErrUnauthenticated)
	assert.ErrorIs(t, f.svc.Chapters.DeleteChapter(ctx, owner.ID, "missing"), ErrNotFound)

	require.NoError(t, f.svc.Chapters.DeleteChapter(ctx, owner.ID, b.ID))
	assert.Equal(t, map[string]int{"A": 0, "C": 1, "D": 2}, f.indexes(t, owner.ID, project.ID))

	assert.ErrorIs(t, f.svc.Chapters.DeleteChapter(ctx, owner.ID, b.ID), ErrNotFound)
}

func TestListChaptersRequiresOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	project := f.project(t, owner.ID, models.VisibilityPublic)

	_, err := f.svc.Chapters.ListChapters(ctx, other.ID, project.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Chapters.ListChapters(ctx, owner.ID, "missing")
	assert.ErrorIs(t, err, ErrForbidden)
}
