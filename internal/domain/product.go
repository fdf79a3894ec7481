package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the stored form of a catalog product. Name is the business
// identity key: at most one stored product may carry a given name.
type Product struct {
	ID          string
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Image       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time // nil until the first update
}

// ProductPayload is the wire form exchanged over the HTTP API, the inbound
// event channel and the external catalog source. Mutable fields are pointers
// so an update payload can leave them unset; unset fields keep their stored
// values on merge.
type ProductPayload struct {
	ID          string           `json:"id,omitempty"`
	Name        string           `json:"name"`
	Category    string           `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       *string          `json:"image,omitempty"`
}
