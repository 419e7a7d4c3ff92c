package models

import (
	"errors"
	"fmt"
)

// TargetKind tells which kind of resource a like or comment points at
type TargetKind string

const (
	TargetProject TargetKind = "project"
	TargetChapter TargetKind = "chapter"
)

// ErrInvalidTarget is returned when a row does not reference exactly one target
var ErrInvalidTarget = errors.New("exactly one of project or chapter must be set")

// Target is the project-or-chapter union used by likes and comments.
// Storage keeps two nullable columns; the union makes "exactly one" checkable.
type Target struct {
	Kind TargetKind
	ID   string
}

// ProjectTarget points at a project
func ProjectTarget(id string) Target {
	return Target{Kind: TargetProject, ID: id}
}

// ChapterTarget points at a chapter
func ChapterTarget(id string) Target {
	return Target{Kind: TargetChapter, ID: id}
}

// Column returns the foreign key column holding the target id
func (t Target) Column() string {
	if t.Kind == TargetChapter {
		return "chapter_id"
	}
	return "project_id"
}

// Validate checks that the target is well formed
func (t Target) Validate() error {
	if t.ID == "" {
		return ErrInvalidTarget
	}
	switch t.Kind {
	case TargetProject, TargetChapter:
		return nil
	default:
		return fmt.Errorf("unknown target kind %q", t.Kind)
	}
}

func (t Target) String() string {
	return string(t.Kind) + ":" + t.ID
}

// targetFromColumns rebuilds a Target from the two nullable columns
func targetFromColumns(projectID, chapterID *string) (Target, error) {
	switch {
	case projectID != nil && chapterID == nil:
		return ProjectTarget(*projectID), nil
	case chapterID != nil && projectID == nil:
		return ChapterTarget(*chapterID), nil
	default:
		return Target{}, ErrInvalidTarget
	}
}
