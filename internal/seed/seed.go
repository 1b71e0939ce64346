// Package seed loads initial portal content from a YAML fixture file.
package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/usecase/content"
)

// File is the fixture document layout.
type File struct {
	ProfilePages  []ProfilePage  `yaml:"profile_pages"`
	News          []News         `yaml:"news"`
	Announcements []Announcement `yaml:"announcements"`
	Downloads     []Download     `yaml:"downloads"`
}

type ProfilePage struct {
	PageType string `yaml:"page_type"`
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
}

type News struct {
	Title           string    `yaml:"title"`
	Content         string    `yaml:"content"`
	PublicationDate time.Time `yaml:"publication_date"`
	ThumbnailURL    string    `yaml:"thumbnail_url"`
}

type Announcement struct {
	Title           string    `yaml:"title"`
	Content         string    `yaml:"content"`
	PublicationDate time.Time `yaml:"publication_date"`
}

type Download struct {
	Title     string `yaml:"title"`
	Category  string `yaml:"category"`
	Publisher string `yaml:"publisher"`
	FileURL   string `yaml:"file_url"`
	FileName  string `yaml:"file_name"`
}

// Parse decodes a fixture document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &f, nil
}

// ReadFile parses the fixture at path.
func ReadFile(path string) (*File, error) {
	// #nosec G304 -- path comes from the command line
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

// Services are the use cases the loader writes through.
type Services struct {
	News          *content.NewsService
	Announcements *content.AnnouncementService
	ProfilePages  *content.ProfilePageService
	Downloads     *content.DownloadService
}

// Result counts the rows written and skipped.
type Result struct {
	Created int
	Skipped int
}

// Load writes every fixture through the services so the usual validation
// applies. Profile pages whose type already exists are skipped, which makes
// repeated runs safe for them; other collections are appended.
func Load(ctx context.Context, f *File, svc Services) (Result, error) {
	var res Result

	for i, p := range f.ProfilePages {
		pageType := entity.PageType(p.PageType)
		existing, err := svc.ProfilePages.GetByType(ctx, pageType)
		if err != nil {
			return res, fmt.Errorf("profile_pages[%d]: %w", i, err)
		}
		if existing != nil {
			slog.Info("seed: profile page exists, skipping", slog.String("page_type", p.PageType))
			res.Skipped++
			continue
		}
		if _, err := svc.ProfilePages.Create(ctx, entity.ProfilePage{PageType: pageType, Title: p.Title, Content: p.Content}); err != nil {
			return res, fmt.Errorf("profile_pages[%d]: %w", i, err)
		}
		res.Created++
	}

	for i, n := range f.News {
		item := entity.News{Title: n.Title, Content: n.Content, PublicationDate: n.PublicationDate.UTC()}
		if n.ThumbnailURL != "" {
			item.ThumbnailURL = &n.ThumbnailURL
		}
		if _, err := svc.News.Create(ctx, item); err != nil {
			return res, fmt.Errorf("news[%d]: %w", i, err)
		}
		res.Created++
	}

	for i, a := range f.Announcements {
		item := entity.Announcement{Title: a.Title, Content: a.Content, PublicationDate: a.PublicationDate.UTC()}
		if _, err := svc.Announcements.Create(ctx, item); err != nil {
			return res, fmt.Errorf("announcements[%d]: %w", i, err)
		}
		res.Created++
	}

	for i, d := range f.Downloads {
		item := entity.Download{Title: d.Title, Category: d.Category, Publisher: d.Publisher, FileURL: d.FileURL, FileName: d.FileName}
		if _, err := svc.Downloads.Create(ctx, item); err != nil {
			return res, fmt.Errorf("downloads[%d]: %w", i, err)
		}
		res.Created++
	}

	return res, nil
}
