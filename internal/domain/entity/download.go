package entity

import "time"

// Download is a downloadable document with a hit counter.
type Download struct {
	ID        int64      `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Category  string     `db:"category" json:"category"`
	Publisher string     `db:"publisher" json:"publisher"`
	FileURL   string     `db:"file_url" json:"file_url"`
	FileName  string     `db:"file_name" json:"file_name"`
	Hits      int64      `db:"hits" json:"hits"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at"`
}

func (d Download) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"title", d.Title},
		{"category", d.Category},
		{"publisher", d.Publisher},
		{"file_name", d.FileName},
	} {
		if err := requireText(f.name, f.value); err != nil {
			return err
		}
	}
	if d.Hits < 0 {
		return &ValidationError{Field: "hits", Message: "must be non-negative"}
	}
	return ValidateURL("file_url", d.FileURL)
}

// DownloadPatch is a partial update of a download. Hits may be overwritten explicitly.
type DownloadPatch struct {
	Title     Optional[string] `json:"title"`
	Category  Optional[string] `json:"category"`
	Publisher Optional[string] `json:"publisher"`
	FileURL   Optional[string] `json:"file_url"`
	FileName  Optional[string] `json:"file_name"`
	Hits      Optional[int64]  `json:"hits"`
}

func (p DownloadPatch) Validate() error {
	if err := firstError(
		notNull("title", p.Title),
		notNull("category", p.Category),
		notNull("publisher", p.Publisher),
		notNull("file_url", p.FileURL),
		notNull("file_name", p.FileName),
		notNull("hits", p.Hits),
	); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		o    Optional[string]
	}{
		{"title", p.Title},
		{"category", p.Category},
		{"publisher", p.Publisher},
		{"file_name", p.FileName},
	} {
		if !f.o.Set {
			continue
		}
		if err := requireText(f.name, f.o.Value); err != nil {
			return err
		}
	}
	if p.FileURL.Set {
		if err := ValidateURL("file_url", p.FileURL.Value); err != nil {
			return err
		}
	}
	if p.Hits.Set && p.Hits.Value < 0 {
		return &ValidationError{Field: "hits", Message: "must be non-negative"}
	}
	return nil
}

func (p DownloadPatch) Assignments() []Assignment {
	out := make([]Assignment, 0, 6)
	out = appendIfSet(out, "title", p.Title)
	out = appendIfSet(out, "category", p.Category)
	out = appendIfSet(out, "publisher", p.Publisher)
	out = appendIfSet(out, "file_url", p.FileURL)
	out = appendIfSet(out, "file_name", p.FileName)
	out = appendIfSet(out, "hits", p.Hits)
	return out
}
