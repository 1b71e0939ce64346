package content

import (
	"context"
	"fmt"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// ProfilePageService manages profile pages and their lookup by page type.
type ProfilePageService struct {
	Service[entity.ProfilePage, entity.ProfilePagePatch]
	pages repository.ProfilePageStore
}

func NewProfilePageService(repo repository.ProfilePageStore) *ProfilePageService {
	return &ProfilePageService{
		Service: Service[entity.ProfilePage, entity.ProfilePagePatch]{Repo: repo, Kind: "profile_page"},
		pages:   repo,
	}
}

// GetByType returns one page of the given type, or nil when none exists.
// When several pages share the type the oldest one is returned.
func (s *ProfilePageService) GetByType(ctx context.Context, pageType entity.PageType) (out *entity.ProfilePage, err error) {
	ctx, op := s.begin(ctx, "get_by_type", attribute.String("content.page_type", string(pageType)))
	defer func() { op.end(err) }()

	if err := entity.ValidatePageType(pageType); err != nil {
		return nil, err
	}
	out, err = s.pages.GetByType(ctx, pageType)
	if err != nil {
		return nil, fmt.Errorf("get profile page by type: %w", err)
	}
	return out, nil
}
