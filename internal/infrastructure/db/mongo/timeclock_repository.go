package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/actionauto/crm-api/internal/core/domain"
)

const timeClocksCollection = "timeclocks"

type TimeClockRepository struct {
	coll *mongo.Collection
}

func NewTimeClockRepository(db *mongo.Database) *TimeClockRepository {
	return &TimeClockRepository{coll: db.Collection(timeClocksCollection)}
}

type timeClockDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"user_id"`
	ClockIn    time.Time          `bson:"clock_in"`
	ClockOut   *time.Time         `bson:"clock_out,omitempty"`
	TotalHours float64            `bson:"total_hours,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (d *timeClockDoc) toDomain() *domain.TimeClock {
	return &domain.TimeClock{
		ID:         d.ID.Hex(),
		UserID:     d.UserID.Hex(),
		ClockIn:    d.ClockIn,
		ClockOut:   d.ClockOut,
		TotalHours: d.TotalHours,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (r *TimeClockRepository) Create(ctx context.Context, rec *domain.TimeClock) (*domain.TimeClock, error) {
	userID, err := objectID(rec.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := timeClockDoc{
		UserID:    userID,
		ClockIn:   rec.ClockIn.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert time clock: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *TimeClockRepository) FindOpenSince(ctx context.Context, userID string, since time.Time) (*domain.TimeClock, error) {
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{
		"user_id":   uid,
		"clock_in":  bson.M{"$gte": since.UTC()},
		"clock_out": nil,
	}

	var doc timeClockDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoActiveClockIn
		}
		return nil, fmt.Errorf("find open time clock: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TimeClockRepository) Close(ctx context.Context, id string, clockOut time.Time, totalHours float64) (*domain.TimeClock, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc timeClockDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"clock_out":   clockOut.UTC(),
			"total_hours": totalHours,
			"updated_at":  time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoActiveClockIn
		}
		return nil, fmt.Errorf("close time clock: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes the timeclocks collection relies on.
// The index supports the open-record lookup; it does not enforce uniqueness.
func (r *TimeClockRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "clock_in", Value: -1}}},
	})
	return err
}
