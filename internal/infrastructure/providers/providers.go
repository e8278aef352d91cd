package providers

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/makweb/addressapi/internal/config"
	"github.com/makweb/addressapi/internal/infrastructure/database"
	"github.com/makweb/addressapi/internal/infrastructure/gateway"
	"github.com/makweb/addressapi/internal/infrastructure/repository"
	"github.com/makweb/addressapi/internal/service"
)

// NewDatabase opens a Postgres connection using the configured DSN.
func NewDatabase(conf config.Server) (*gorm.DB, error) {
	return database.NewPostgres(conf.PostgresDsn)
}

// MigrateDatabase applies migrations for the application models.
func MigrateDatabase(db *gorm.DB) error {
	return database.MigratePostgres(db)
}

// NewRedis connects to redis, or returns nil when no address is configured.
func NewRedis(ctx context.Context, conf config.Server) (*redis.Client, error) {
	if conf.RedisAddr == "" {
		return nil, nil
	}
	return database.NewRedis(ctx, conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
}

// NewSignalService returns nil when redis is disabled.
func NewSignalService(rdb *redis.Client) *service.SignalService {
	if rdb == nil {
		return nil
	}
	return service.NewSignalService(rdb)
}

// NewAddressRepository constructs the gorm backed address store.
func NewAddressRepository(db *gorm.DB) *repository.AddressRepository {
	return repository.NewAddressRepository(db)
}

// NewGeocoder constructs the geocoding gateway.
func NewGeocoder(conf config.Geocoder) *gateway.NominatimGeocoder {
	return gateway.NewNominatimGeocoder(conf.BaseURL, conf.UserAgent, conf.Timeout)
}
