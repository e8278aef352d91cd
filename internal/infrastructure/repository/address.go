package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/makweb/addressapi/internal/domain"
	"github.com/makweb/addressapi/internal/infrastructure/database/models"
)

var tracer = otel.Tracer("repository")

var updatableColumns = []string{"street", "house_number", "annex", "postal_code", "city", "country", "mdate"}

type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) List(ctx context.Context) ([]domain.Address, error) {
	var rows []models.Address
	err := r.db.WithContext(ctx).Order("address_id").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list addresses")
	}
	return toDomainList(rows), nil
}

func (r *AddressRepository) Get(ctx context.Context, id int64) (domain.Address, error) {
	var row models.Address
	err := r.db.WithContext(ctx).First(&row, "address_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Address{}, domain.NotFoundError{Resource: "address"}
		}
		return domain.Address{}, errors.Wrapf(err, "get address %d", id)
	}
	return toDomain(row), nil
}

func (r *AddressRepository) Create(ctx context.Context, address domain.Address) (domain.Address, error) {
	row := fromDomain(address)
	row.AddressID = 0

	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		return domain.Address{}, errors.Wrap(err, "create address")
	}
	return toDomain(row), nil
}

func (r *AddressRepository) Update(ctx context.Context, address domain.Address) error {
	if address.AddressID == 0 {
		return domain.NotFoundError{Resource: "address"}
	}
	row := fromDomain(address)

	result := r.db.WithContext(ctx).
		Model(&row).
		Select(updatableColumns).
		Updates(&row)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "update address %d", address.AddressID)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "address"}
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Address{}, "address_id = ?", id)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "delete address %d", id)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "address"}
	}
	return nil
}

// Search selects rows whose filter column equals the filter value. Column names
// come from the field allow-list; the value is always a bind parameter.
func (r *AddressRepository) Search(ctx context.Context, filter domain.Filter) ([]domain.Address, error) {
	ctx, span := tracer.Start(ctx, "Address.Repository.Search")
	defer span.End()

	if filter.Field.Column() == "" || filter.OrderBy.Column() == "" {
		return nil, domain.ErrInvalidFilterField
	}
	span.SetAttributes(
		attribute.String("column", filter.Field.Column()),
		attribute.String("order", filter.OrderBy.Column()),
	)

	var rows []models.Address
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: filter.Field.Column()}, Value: filter.Value}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: filter.OrderBy.Column()}}).
		Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "search addresses")
	}
	return toDomainList(rows), nil
}

func (r *AddressRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func toDomain(row models.Address) domain.Address {
	return domain.Address{
		AddressID:   row.AddressID,
		Street:      row.Street,
		HouseNumber: row.HouseNumber,
		Annex:       row.Annex,
		PostalCode:  row.PostalCode,
		City:        row.City,
		Country:     row.Country,
	}
}

func toDomainList(rows []models.Address) []domain.Address {
	result := make([]domain.Address, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomain(row))
	}
	return result
}

func fromDomain(address domain.Address) models.Address {
	return models.Address{
		AddressID:   address.AddressID,
		Street:      address.Street,
		HouseNumber: address.HouseNumber,
		Annex:       address.Annex,
		PostalCode:  address.PostalCode,
		City:        address.City,
		Country:     address.Country,
	}
}
