package entity

import (
	"fmt"
	"strings"
	"time"
)

// PageType is the fixed category of a profile page.
type PageType string

const (
	PageTypeVisiMisi           PageType = "visi_misi"
	PageTypeStrukturOrganisasi PageType = "struktur_organisasi"
	PageTypeSejarah            PageType = "sejarah"
)

// PageTypes lists every accepted page type.
var PageTypes = []PageType{PageTypeVisiMisi, PageTypeStrukturOrganisasi, PageTypeSejarah}

// IsValid reports whether t is one of the fixed page types.
func (t PageType) IsValid() bool {
	switch t {
	case PageTypeVisiMisi, PageTypeStrukturOrganisasi, PageTypeSejarah:
		return true
	}
	return false
}

// ValidatePageType returns a ValidationError for values outside PageTypes.
func ValidatePageType(t PageType) error {
	if t.IsValid() {
		return nil
	}
	names := make([]string, len(PageTypes))
	for i, pt := range PageTypes {
		names[i] = string(pt)
	}
	return &ValidationError{
		Field:   "page_type",
		Message: fmt.Sprintf("invalid page_type %q (must be %s)", string(t), strings.Join(names, ", ")),
	}
}

// ProfilePage is a static page describing the agency. Several rows may share a PageType.
type ProfilePage struct {
	ID        int64      `db:"id" json:"id"`
	PageType  PageType   `db:"page_type" json:"page_type"`
	Title     string     `db:"title" json:"title"`
	Content   string     `db:"content" json:"content"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at"`
}

func (p ProfilePage) Validate() error {
	if err := ValidatePageType(p.PageType); err != nil {
		return err
	}
	if err := requireText("title", p.Title); err != nil {
		return err
	}
	return requireText("content", p.Content)
}

// ProfilePagePatch is a partial update of a profile page.
type ProfilePagePatch struct {
	PageType Optional[PageType] `json:"page_type"`
	Title    Optional[string]   `json:"title"`
	Content  Optional[string]   `json:"content"`
}

func (p ProfilePagePatch) Validate() error {
	if err := firstError(
		notNull("page_type", p.PageType),
		notNull("title", p.Title),
		notNull("content", p.Content),
	); err != nil {
		return err
	}
	if p.PageType.Set {
		if err := ValidatePageType(p.PageType.Value); err != nil {
			return err
		}
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
	return nil
}

func (p ProfilePagePatch) Assignments() []Assignment {
	out := make([]Assignment, 0, 3)
	if p.PageType.Set {
		out = append(out, Assignment{Column: "page_type", Value: string(p.PageType.Value)})
	}
	out = appendIfSet(out, "title", p.Title)
	out = appendIfSet(out, "content", p.Content)
	return out
}
