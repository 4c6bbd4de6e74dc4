// Package taxonomy holds the controlled vocabulary for programmes:
// categories, tags, and the many-to-many programme/tag links.
package taxonomy

import (
	"errors"
	"strings"
)

// Domain errors.
var (
	ErrEmptyLabel       = errors.New("label cannot be empty")
	ErrEmptyProgrammeID = errors.New("tag link must reference a programme")
	ErrEmptyTagID       = errors.New("tag link must reference a tag")
)

// Category is a coarse grouping label for programmes.
type Category struct {
	ID    string
	Label string
}

// Tag is a free-form label attachable to any number of programmes.
type Tag struct {
	ID    string
	Label string
}

// TagLink is one (programme, tag) pair. The link collection has set
// semantics: at most one link per pair.
type TagLink struct {
	ProgrammeID string
	TagID       string
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Label) == "" {
		return ErrEmptyLabel
	}
	return nil
}

// Validate checks if the Tag has valid data.
func (t *Tag) Validate() error {
	if strings.TrimSpace(t.Label) == "" {
		return ErrEmptyLabel
	}
	return nil
}

// Validate checks if the TagLink has valid data.
func (l *TagLink) Validate() error {
	if l.ProgrammeID == "" {
		return ErrEmptyProgrammeID
	}
	if l.TagID == "" {
		return ErrEmptyTagID
	}
	return nil
}
