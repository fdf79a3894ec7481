package product

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fakestore-sync/internal/converter"
	"fakestore-sync/internal/domain"
	productrepo "fakestore-sync/internal/repository/product"
)

// Notifier is the outbound notification channel: one plain-text message per
// processing outcome, best effort, no delivery confirmation consumed here.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Service implements single-record product operations. Each operation
// classifies its outcome as success, a business conflict/not-found
// (domain.ErrAlreadyExists, domain.ErrNotFound), or an infrastructure
// failure carrying its cause.
type Service struct {
	repo     productrepo.Repository
	conv     *converter.Converter
	notifier Notifier
	logger   *zap.Logger
}

func New(repo productrepo.Repository, conv *converter.Converter, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, conv: conv, notifier: notifier, logger: logger}
}

// Save stores a new product. A product whose name is already taken is a
// conflict and nothing is written; the insert itself is the uniqueness
// check, so concurrent saves for one name cannot both succeed.
func (s *Service) Save(ctx context.Context, in domain.ProductPayload) (*domain.ProductPayload, error) {
	created, err := s.repo.Create(ctx, s.conv.ToStored(in))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("product %q already exists in the database: %w", in.Name, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("save product %q: %w", in.Name, err)
	}
	s.logger.Info("product saved", zap.String("name", created.Name), zap.String("id", created.ID))
	out := s.conv.ToPayload(*created)
	return &out, nil
}

// GetByName returns the wire form of the product with the given name.
func (s *Service) GetByName(ctx context.Context, name string) (*domain.ProductPayload, error) {
	p, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no product found with name %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get product %q: %w", name, err)
	}
	out := s.conv.ToPayload(*p)
	return &out, nil
}

// List returns every stored product in the order the store returns them.
func (s *Service) List(ctx context.Context) ([]domain.ProductPayload, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return s.conv.ToPayloadList(products), nil
}

// Exists reports whether a product with the given name is stored.
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check product %q: %w", name, err)
	}
	return exists, nil
}

// DeleteByName removes the product with the given name. Deleting a name
// that is not stored is a not-found, and nothing is deleted.
func (s *Service) DeleteByName(ctx context.Context, name string) error {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("cannot delete, no product found with name %q: %w", name, domain.ErrNotFound)
	}
	if err := s.repo.DeleteByName(ctx, name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("cannot delete, no product found with name %q: %w", name, domain.ErrNotFound)
		}
		return fmt.Errorf("delete product %q: %w", name, err)
	}
	s.logger.Info("product deleted", zap.String("name", name))
	return nil
}

// Update merges the set fields of in onto the stored product with the given
// id and writes the result. Name and category are never changed by an
// update. The returned value is re-read from the store by name after the
// write, so it reflects what was actually persisted.
func (s *Service) Update(ctx context.Context, id string, in domain.ProductPayload) (*domain.ProductPayload, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no product found with id %q: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get product by id %q: %w", id, err)
	}

	merged := s.conv.MergeForUpdate(*existing, in, id)
	if _, err := s.repo.Update(ctx, merged); err != nil {
		return nil, fmt.Errorf("update product %q: %w", existing.Name, err)
	}

	stored, err := s.repo.GetByName(ctx, existing.Name)
	if err != nil {
		return nil, fmt.Errorf("read back product %q: %w", existing.Name, err)
	}
	s.logger.Info("product updated", zap.String("name", stored.Name), zap.String("id", id))
	out := s.conv.ToPayload(*stored)
	return &out, nil
}

// SaveFromEvent processes one inbound product event: it persists the
// product if its name is free and reports the outcome on the notification
// channel. A duplicate still emits a notification before failing with a
// conflict; an infrastructure failure emits an error notification before
// failing. A notification send failure never overrides an error already
// classified, but after a successful save it surfaces as the result.
func (s *Service) SaveFromEvent(ctx context.Context, in domain.ProductPayload) error {
	exists, err := s.Exists(ctx, in.Name)
	if err != nil {
		s.notifyBestEffort(ctx, fmt.Sprintf("Error saving product %s.", in.Name))
		return err
	}
	if exists {
		s.notifyBestEffort(ctx, fmt.Sprintf("Product %s already exists in the database.", in.Name))
		return fmt.Errorf("product %q already exists in the database: %w", in.Name, domain.ErrAlreadyExists)
	}

	if _, err := s.repo.Create(ctx, s.conv.ToStored(in)); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost a race with a concurrent writer after the existence check.
			s.notifyBestEffort(ctx, fmt.Sprintf("Product %s already exists in the database.", in.Name))
			return fmt.Errorf("product %q already exists in the database: %w", in.Name, domain.ErrAlreadyExists)
		}
		s.notifyBestEffort(ctx, fmt.Sprintf("Error saving product %s.", in.Name))
		return fmt.Errorf("save product %q: %w", in.Name, err)
	}

	s.logger.Info("product saved from event", zap.String("name", in.Name))
	if err := s.notifier.Notify(ctx, fmt.Sprintf("Product %s saved successfully.", in.Name)); err != nil {
		return fmt.Errorf("notify outcome for product %q: %w", in.Name, err)
	}
	return nil
}

// notifyBestEffort sends alongside a primary error: a failed send is logged
// and never changes the classification of the outcome already decided.
func (s *Service) notifyBestEffort(ctx context.Context, message string) {
	if err := s.notifier.Notify(ctx, message); err != nil {
		s.logger.Error("notification send failed", zap.String("message", message), zap.Error(err))
	}
}
