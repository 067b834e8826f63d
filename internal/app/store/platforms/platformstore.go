// internal/app/store/platforms/platformstore.go
package platforms

import (
	"context"

	"github.com/dalemusser/stratadesk/internal/app/system/listing"
	"github.com/dalemusser/stratadesk/internal/app/system/mongoconn"
	"github.com/dalemusser/stratadesk/internal/domain/models"
	"go.uber.org/zap"
)

// CollectionName is the MongoDB collection holding platforms.
const CollectionName = "platforms"

// Store lists platforms. Unlike clients and dealers, failures are returned
// to the caller: pages cannot render without the platform list.
type Store struct {
	lister *listing.Lister[models.Platform]
}

// New creates a platform store.
func New(provider mongoconn.Provider, logger *zap.Logger) *Store {
	return &Store{
		lister: listing.New(provider, listing.Query[models.Platform]{
			Collection: CollectionName,
			Convert:    toPlatform,
			OnFailure:  listing.Propagate,
		}, logger),
	}
}

// List returns all platforms in natural order. Every platform gets
// models.DefaultPlatformColor.
func (s *Store) List(ctx context.Context) ([]models.Platform, error) {
	return s.lister.List(ctx)
}

func toPlatform(d listing.Document) (models.Platform, error) {
	id, err := d.ID()
	if err != nil {
		return models.Platform{}, err
	}
	return models.Platform{
		ID:         id,
		Name:       d.String("name"),
		PlatformID: d.String("platformId"),
		Color:      models.DefaultPlatformColor,
	}, nil
}
