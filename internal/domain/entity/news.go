// Package entity defines the content entities served by the portal, their partial-update
// payloads, validation rules and the domain error taxonomy.
package entity

import "time"

// News is a dated article, optionally illustrated by a thumbnail.
type News struct {
	ID              int64      `db:"id" json:"id"`
	Title           string     `db:"title" json:"title"`
	Content         string     `db:"content" json:"content"`
	PublicationDate time.Time  `db:"publication_date" json:"publication_date"`
	ThumbnailURL    *string    `db:"thumbnail_url" json:"thumbnail_url"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at"`
}

// Validate checks the fields required to create a news item.
func (n News) Validate() error {
	if err := requireText("title", n.Title); err != nil {
		return err
	}
	if err := requireText("content", n.Content); err != nil {
		return err
	}
	if n.PublicationDate.IsZero() {
		return &ValidationError{Field: "publication_date", Message: "is required"}
	}
	if n.ThumbnailURL != nil {
		return ValidateURL("thumbnail_url", *n.ThumbnailURL)
	}
	return nil
}

// NewsPatch is a partial update of a news item.
type NewsPatch struct {
	Title           Optional[string]    `json:"title"`
	Content         Optional[string]    `json:"content"`
	PublicationDate Optional[time.Time] `json:"publication_date"`
	ThumbnailURL    Optional[*string]   `json:"thumbnail_url"`
}

func (p NewsPatch) Validate() error {
	if err := firstError(
		notNull("title", p.Title),
		notNull("content", p.Content),
		notNull("publication_date", p.PublicationDate),
	); err != nil {
		return err
	}
	if p.Title.Set {
		if err := requireText("title", p.Title.Value); err != nil {
			return err
		}
	}
	if p.Content.Set {
		if err := requireText("content", p.Content.Value); err != nil {
			return err
		}
	}
	if p.PublicationDate.Set && p.PublicationDate.Value.IsZero() {
		return &ValidationError{Field: "publication_date", Message: "must be a valid date"}
	}
	if p.ThumbnailURL.Set && p.ThumbnailURL.Value != nil {
		return ValidateURL("thumbnail_url", *p.ThumbnailURL.Value)
	}
	return nil
}

func (p NewsPatch) Assignments() []Assignment {
	out := make([]Assignment, 0, 4)
	out = appendIfSet(out, "title", p.Title)
	out = appendIfSet(out, "content", p.Content)
	out = appendIfSet(out, "publication_date", p.PublicationDate)
	out = appendIfSet(out, "thumbnail_url", p.ThumbnailURL)
	return out
}
