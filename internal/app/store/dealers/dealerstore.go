// internal/app/store/dealers/dealerstore.go
package dealers

import (
	"context"

	"github.com/dalemusser/stratadesk/internal/app/system/listing"
	"github.com/dalemusser/stratadesk/internal/app/system/mongoconn"
	"github.com/dalemusser/stratadesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CollectionName is the MongoDB collection holding dealers.
const CollectionName = "dealers"

// Store lists dealers. Like clients, failures degrade to an empty list.
type Store struct {
	lister *listing.Lister[models.Dealer]
}

// New creates a dealer store.
func New(provider mongoconn.Provider, logger *zap.Logger) *Store {
	return &Store{
		lister: listing.New(provider, listing.Query[models.Dealer]{
			Collection: CollectionName,
			Sort:       bson.D{{Key: "name", Value: 1}},
			Convert:    toDealer,
			OnFailure:  listing.Swallow,
		}, logger),
	}
}

// List returns all dealers sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Dealer, error) {
	return s.lister.List(ctx)
}

func toDealer(d listing.Document) (models.Dealer, error) {
	id, err := d.ID()
	if err != nil {
		return models.Dealer{}, err
	}
	return models.Dealer{
		ID:        id,
		Name:      d.String("name"),
		CreatedAt: createdAt(d),
	}, nil
}

// createdAt keeps an unparsable created_at verbatim instead of dropping it.
func createdAt(d listing.Document) *models.Timestamp {
	t, raw := d.Time("created_at")
	switch {
	case t != nil:
		return &models.Timestamp{Time: *t}
	case raw != "":
		return &models.Timestamp{Raw: raw}
	default:
		return nil
	}
}
