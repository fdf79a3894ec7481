package converter

import (
	"time"

	"github.com/google/uuid"

	"fakestore-sync/internal/domain"
)

// Converter maps between the wire form and the stored form of a product.
// The clock and the identifier generator are injectable for tests.
type Converter struct {
	now   func() time.Time
	newID func() string
}

func New() *Converter {
	return &Converter{now: time.Now, newID: uuid.NewString}
}

// NewWith builds a Converter with an explicit clock and id generator.
func NewWith(now func() time.Time, newID func() string) *Converter {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Converter{now: now, newID: newID}
}

// ToStored builds a stored product from a wire payload: fresh identifier,
// creation timestamp stamped, unset optional fields become zero values.
func (c *Converter) ToStored(in domain.ProductPayload) domain.Product {
	p := domain.Product{
		ID:        c.newID(),
		Name:      in.Name,
		Category:  in.Category,
		CreatedAt: c.now(),
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	return p
}

// ToPayload maps a stored product to its wire form. Timestamps are not
// exposed on the wire.
func (c *Converter) ToPayload(p domain.Product) domain.ProductPayload {
	desc := p.Description
	price := p.Price
	image := p.Image
	return domain.ProductPayload{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: &desc,
		Price:       &price,
		Image:       &image,
	}
}

// ToPayloadList maps stored products to wire forms, preserving order.
func (c *Converter) ToPayloadList(products []domain.Product) []domain.ProductPayload {
	out := make([]domain.ProductPayload, 0, len(products))
	for _, p := range products {
		out = append(out, c.ToPayload(p))
	}
	return out
}

// MergeForUpdate applies the set fields of in onto existing. Identifier,
// name, category and creation time always carry over from existing; the
// update timestamp is stamped regardless of which fields changed.
func (c *Converter) MergeForUpdate(existing domain.Product, in domain.ProductPayload, id string) domain.Product {
	merged := domain.Product{
		ID:          id,
		Name:        existing.Name,
		Category:    existing.Category,
		Description: existing.Description,
		Price:       existing.Price,
		Image:       existing.Image,
		CreatedAt:   existing.CreatedAt,
	}
	if in.Description != nil {
		merged.Description = *in.Description
	}
	if in.Price != nil {
		merged.Price = *in.Price
	}
	if in.Image != nil {
		merged.Image = *in.Image
	}
	now := c.now()
	merged.UpdatedAt = &now
	return merged
}
