package entity

import "time"

// Announcement is a dated notice without illustration.
type Announcement struct {
	ID              int64      `db:"id" json:"id"`
	Title           string     `db:"title" json:"title"`
	Content         string     `db:"content" json:"content"`
	PublicationDate time.Time  `db:"publication_date" json:"publication_date"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at"`
}

func (a Announcement) Validate() error {
	if err := requireText("title", a.Title); err != nil {
		return err
	}
	if err := requireText("content", a.Content); err != nil {
		return err
	}
	if a.PublicationDate.IsZero() {
		return &ValidationError{Field: "publication_date", Message: "is required"}
	}
	return nil
}

// AnnouncementPatch is a partial update of an announcement.
type AnnouncementPatch struct {
	Title           Optional[string]    `json:"title"`
	Content         Optional[string]    `json:"content"`
	PublicationDate Optional[time.Time] `json:"publication_date"`
}

func (p AnnouncementPatch) Validate() error {
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
	return nil
}

func (p AnnouncementPatch) Assignments() []Assignment {
	out := make([]Assignment, 0, 3)
	out = appendIfSet(out, "title", p.Title)
	out = appendIfSet(out, "content", p.Content)
	out = appendIfSet(out, "publication_date", p.PublicationDate)
	return out
}
