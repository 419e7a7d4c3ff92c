package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLikeSetsExactlyOneColumn(t *testing.T) {
	like := NewLike("u1", ChapterTarget("c1"))
	require.NotNil(t, like.ChapterID)
	assert.Nil(t, like.ProjectID)

	target, err := like.Target()
	require.NoError(t, err)
	assert.Equal(t, ChapterTarget("c1"), target)
	assert.Equal(t, "chapter_id", target.Column())
}

func TestLikeTargetRejectsBothOrNeither(t *testing.T) {
	p, c := "p1", "c1"

	_, err := (&Like{ProjectID: &p, ChapterID: &c}).Target()
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = (&Like{}).Target()
	assert.ErrorIs(t, err, ErrInvalidTarget)

	assert.ErrorIs(t, (&Like{}).BeforeCreate(nil), ErrInvalidTarget)
}

func TestNewCommentTargets(t *testing.T) {
	projectLevel := NewComment("u1", "p1", ProjectTarget("p1"), "hi")
	assert.Nil(t, projectLevel.ChapterID)
	assert.Equal(t, ProjectTarget("p1"), projectLevel.Target())

	chapterLevel := NewComment("u1", "p1", ChapterTarget("c1"), "hi")
	require.NotNil(t, chapterLevel.ChapterID)
	assert.Equal(t, "p1", chapterLevel.ProjectID)
	assert.Equal(t, ChapterTarget("c1"), chapterLevel.Target())
}

func TestTargetValidate(t *testing.T) {
	assert.NoError(t, ProjectTarget("p").Validate())
	assert.ErrorIs(t, ProjectTarget("").Validate(), ErrInvalidTarget)
	assert.Error(t, Target{Kind: "post", ID: "x"}.Validate())
}
