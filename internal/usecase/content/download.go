package content

import (
	"context"
	"fmt"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/observability/metrics"
	"dinas-portal/internal/observability/tracing"
	"dinas-portal/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// DownloadService manages downloadable documents and their hit counters.
type DownloadService struct {
	Service[entity.Download, entity.DownloadPatch]
	downloads repository.DownloadStore
}

func NewDownloadService(repo repository.DownloadStore) *DownloadService {
	return &DownloadService{
		Service:   Service[entity.Download, entity.DownloadPatch]{Repo: repo, Kind: "download"},
		downloads: repo,
	}
}

// IncrementHits records one download. The counter is advanced by the store in a single
// statement, so concurrent hits are never lost.
func (s *DownloadService) IncrementHits(ctx context.Context, id int64) (out *entity.Download, err error) {
	ctx, op := s.begin(ctx, "increment_hits", tracing.IDAttr(id))
	defer func() { op.end(err) }()

	if err := invalidID(id); err != nil {
		return nil, err
	}
	out, err = s.downloads.IncrementHits(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("increment download hits: %w", err)
	}
	metrics.RecordDownloadHit()
	op.span.SetAttributes(attribute.Int64("download.hits", out.Hits))
	return out, nil
}
