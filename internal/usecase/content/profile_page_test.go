package content_test

import (
	"context"
	"testing"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/usecase/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPages struct {
	rows  []*entity.ProfilePage
	calls int
}

func (m *memPages) Create(_ context.Context, p *entity.ProfilePage) error {
	m.calls++
	p.ID = int64(len(m.rows) + 1)
	cp := *p
	m.rows = append(m.rows, &cp)
	return nil
}
func (m *memPages) Get(_ context.Context, id int64) (*entity.ProfilePage, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}
func (m *memPages) List(context.Context) ([]*entity.ProfilePage, error) { return m.rows, nil }
func (m *memPages) Update(_ context.Context, id int64, _ entity.ProfilePagePatch) (*entity.ProfilePage, error) {
	return nil, &entity.NotFoundError{Kind: "profile_page", ID: id}
}
func (m *memPages) Delete(context.Context, int64) (bool, error) { return false, nil }
func (m *memPages) GetByType(_ context.Context, t entity.PageType) (*entity.ProfilePage, error) {
	m.calls++
	for _, r := range m.rows {
		if r.PageType == t {
			return r, nil
		}
	}
	return nil, nil
}

func TestProfilePageService_GetByTypeWithDuplicates(t *testing.T) {
	repo := &memPages{}
	svc := content.NewProfilePageService(repo)
	ctx := context.Background()

	for _, title := range []string{"Visi 1", "Visi 2"} {
		_, err := svc.Create(ctx, entity.ProfilePage{PageType: entity.PageTypeVisiMisi, Title: title, Content: "isi"})
		require.NoError(t, err)
	}

	got, err := svc.GetByType(ctx, entity.PageTypeVisiMisi)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Visi 1", got.Title)

	none, err := svc.GetByType(ctx, entity.PageTypeSejarah)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestProfilePageService_RejectsUnknownType(t *testing.T) {
	repo := &memPages{}
	svc := content.NewProfilePageService(repo)

	_, err := svc.GetByType(context.Background(), entity.PageType("galeri"))
	assert.ErrorIs(t, err, entity.ErrValidationFailed)

	_, err = svc.Create(context.Background(), entity.ProfilePage{PageType: "galeri", Title: "t", Content: "c"})
	assert.ErrorIs(t, err, entity.ErrValidationFailed)

	assert.Zero(t, repo.calls)
}
