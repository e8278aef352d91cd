package usecase

import (
	"context"

	"github.com/makweb/addressapi/internal/domain"
)

// AddressRepository defines storage operations for addresses.
type AddressRepository interface {
	List(ctx context.Context) ([]domain.Address, error)
	Get(ctx context.Context, id int64) (domain.Address, error)
	Create(ctx context.Context, address domain.Address) (domain.Address, error)
	Update(ctx context.Context, address domain.Address) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter domain.Filter) ([]domain.Address, error)
	Ping(ctx context.Context) error
}

// Geocoder resolves a formatted address to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, formattedAddress string) (domain.GeoCoordinate, error)
}

// EventPublisher broadcasts address changes.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.AddressEvent) error
}
