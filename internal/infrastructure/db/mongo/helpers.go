package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/actionauto/crm-api/internal/core/domain"
)

// objectID parses an id from the API into a Mongo ObjectID.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

// optionalObjectID parses an optional reference; empty means unset.
func optionalObjectID(id string) (*primitive.ObjectID, error) {
	if id == "" {
		return nil, nil
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return &oid, nil
}

func hexOrEmpty(oid *primitive.ObjectID) string {
	if oid == nil {
		return ""
	}
	return oid.Hex()
}

// nameResolver joins referenced user ids to display names at read time.
// Only the name is resolved, never the full user document.
type nameResolver struct {
	users *mongo.Collection
}

func newNameResolver(db *mongo.Database) nameResolver {
	return nameResolver{users: db.Collection(usersCollection)}
}

func (r nameResolver) displayNames(ctx context.Context, ids []primitive.ObjectID) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("resolve display names: %w", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]string, len(ids))
	for cur.Next(ctx) {
		var doc struct {
			ID   primitive.ObjectID `bson:"_id"`
			Name string             `bson:"name"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("resolve display names: %w", err)
		}
		names[doc.ID.Hex()] = doc.Name
	}
	return names, cur.Err()
}
