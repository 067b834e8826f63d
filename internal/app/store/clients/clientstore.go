// internal/app/store/clients/clientstore.go
package clients

import (
	"context"

	"github.com/dalemusser/stratadesk/internal/app/system/listing"
	"github.com/dalemusser/stratadesk/internal/app/system/mongoconn"
	"github.com/dalemusser/stratadesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CollectionName is the MongoDB collection holding clients.
const CollectionName = "clients"

// Store lists clients. Listing is best effort: failures are logged and an
// empty list is returned.
type Store struct {
	lister *listing.Lister[models.Client]
}

// New creates a client store.
func New(provider mongoconn.Provider, logger *zap.Logger) *Store {
	return &Store{
		lister: listing.New(provider, listing.Query[models.Client]{
			Collection: CollectionName,
			Sort:       bson.D{{Key: "name", Value: 1}},
			Convert:    toClient,
			OnFailure:  listing.Swallow,
		}, logger),
	}
}

// List returns all clients sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Client, error) {
	return s.lister.List(ctx)
}

func toClient(d listing.Document) (models.Client, error) {
	id, err := d.ID()
	if err != nil {
		return models.Client{}, err
	}
	return models.Client{
		ID:        id,
		Name:      d.String("name"),
		Email:     d.String("email"),
		Phone:     d.String("phone"),
		Address:   d.String("address"),
		Documents: d.Strings("documents"),
		Cars:      d.Strings("cars"),
	}, nil
}
