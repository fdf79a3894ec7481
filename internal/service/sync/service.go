package sync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fakestore-sync/internal/converter"
	"fakestore-sync/internal/domain"
	productrepo "fakestore-sync/internal/repository/product"
)

// Source is the external catalog the engine pulls candidate products from.
type Source interface {
	FetchAll(ctx context.Context) ([]domain.ProductPayload, error)
}

// Service synchronizes the local store against the external catalog: every
// candidate whose name is not yet stored is persisted, candidates whose
// name is already taken are skipped. Duplicates never abort the batch;
// any other failure does.
type Service struct {
	source Source
	repo   productrepo.Repository
	conv   *converter.Converter
	logger *zap.Logger
}

func New(source Source, repo productrepo.Repository, conv *converter.Converter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, repo: repo, conv: conv, logger: logger}
}

// Run fetches the full candidate list, persists the candidates not yet
// stored, and returns the complete stored set in wire form. The response
// reflects total state after the batch, not only the newly inserted rows.
func (s *Service) Run(ctx context.Context) ([]domain.ProductPayload, error) {
	candidates, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	s.logger.Info("catalog fetched", zap.Int("candidates", len(candidates)))

	inserted := 0
	for _, candidate := range candidates {
		exists, err := s.repo.ExistsByName(ctx, candidate.Name)
		if err != nil {
			return nil, fmt.Errorf("check product %q: %w", candidate.Name, err)
		}
		if exists {
			s.logger.Debug("skipping existing product", zap.String("name", candidate.Name))
			continue
		}
		if _, err := s.repo.Create(ctx, s.conv.ToStored(candidate)); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				// Raced with a concurrent writer; same outcome as the skip above.
				s.logger.Debug("skipping existing product", zap.String("name", candidate.Name))
				continue
			}
			return nil, fmt.Errorf("save product %q: %w", candidate.Name, err)
		}
		inserted++
	}
	s.logger.Info("synchronization finished", zap.Int("inserted", inserted), zap.Int("skipped", len(candidates)-inserted))

	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return s.conv.ToPayloadList(stored), nil
}
