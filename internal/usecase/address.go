package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/makweb/addressapi/internal/domain"
	"github.com/makweb/addressapi/internal/geo"
)

var tracer = otel.Tracer("usecase")

type AddressUsecase struct {
	repo      AddressRepository
	geocoder  Geocoder
	publisher EventPublisher
}

// NewAddressUsecase wires the usecase. publisher may be nil.
func NewAddressUsecase(repo AddressRepository, geocoder Geocoder, publisher EventPublisher) *AddressUsecase {
	return &AddressUsecase{repo: repo, geocoder: geocoder, publisher: publisher}
}

func (uc *AddressUsecase) List(ctx context.Context) ([]domain.Address, error) {
	return uc.repo.List(ctx)
}

func (uc *AddressUsecase) Get(ctx context.Context, id int64) (domain.Address, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *AddressUsecase) Create(ctx context.Context, address domain.Address) (domain.Address, error) {
	if err := address.Validate(); err != nil {
		return domain.Address{}, err
	}
	address.AddressID = 0

	created, err := uc.repo.Create(ctx, address)
	if err != nil {
		return domain.Address{}, err
	}

	uc.publish(ctx, domain.AddressEvent{Type: domain.EventCreated, AddressID: created.AddressID, Address: &created})
	return created, nil
}

// Update replaces the stored address with the given id. The body's id must match.
func (uc *AddressUsecase) Update(ctx context.Context, id int64, address domain.Address) error {
	if id != address.AddressID {
		return domain.ErrIDMismatch
	}
	if err := address.Validate(); err != nil {
		return err
	}

	if err := uc.repo.Update(ctx, address); err != nil {
		return err
	}

	uc.publish(ctx, domain.AddressEvent{Type: domain.EventUpdated, AddressID: id, Address: &address})
	return nil
}

func (uc *AddressUsecase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.publish(ctx, domain.AddressEvent{Type: domain.EventDeleted, AddressID: id})
	return nil
}

// Search runs a filtered, ordered lookup. Field names are resolved against the
// allow-list before anything reaches the repository.
func (uc *AddressUsecase) Search(ctx context.Context, column, comparator, order string) ([]domain.Address, error) {
	ctx, span := tracer.Start(ctx, "Address.Usecase.Search")
	defer span.End()

	filter, err := domain.ResolveFilter(column, comparator, order)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("field", filter.Field.String()),
		attribute.String("order", filter.OrderBy.String()),
	)

	return uc.repo.Search(ctx, filter)
}

// Distance loads both stored addresses before geocoding either of them and
// returns the great-circle distance between them, rounded to two decimals.
func (uc *AddressUsecase) Distance(ctx context.Context, fromID, toID int64) (domain.Distance, error) {
	ctx, span := tracer.Start(ctx, "Address.Usecase.Distance")
	defer span.End()

	fromAddress, err := uc.repo.Get(ctx, fromID)
	if err != nil {
		span.RecordError(err)
		return domain.Distance{}, err
	}
	toAddress, err := uc.repo.Get(ctx, toID)
	if err != nil {
		span.RecordError(err)
		return domain.Distance{}, err
	}

	from, err := uc.geocoder.Lookup(ctx, fromAddress.Formatted())
	if err != nil {
		span.RecordError(err)
		return domain.Distance{}, err
	}
	to, err := uc.geocoder.Lookup(ctx, toAddress.Formatted())
	if err != nil {
		span.RecordError(err)
		return domain.Distance{}, err
	}

	km := geo.Distance(from, to)
	if !geo.IsFinite(km) {
		err := fmt.Errorf("%w: coordinates %+v and %+v", domain.ErrInvalidDistance, from, to)
		span.RecordError(err)
		return domain.Distance{}, err
	}

	return domain.Distance{From: fromID, To: toID, DistanceKm: geo.RoundKm(km)}, nil
}

// Ping reports whether storage is reachable.
func (uc *AddressUsecase) Ping(ctx context.Context) error {
	return uc.repo.Ping(ctx)
}

func (uc *AddressUsecase) publish(ctx context.Context, event domain.AddressEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(
			ctx, "Failed to publish address event",
			slog.String("error", err.Error()),
			slog.String("type", string(event.Type)),
			slog.Int64("addressId", event.AddressID),
			slog.String("module", "usecase"),
		)
	}
}
