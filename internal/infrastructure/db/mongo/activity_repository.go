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
	"github.com/actionauto/crm-api/internal/core/ports"
)

const activitiesCollection = "activities"

type ActivityRepository struct {
	coll  *mongo.Collection
	names nameResolver
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activitiesCollection), names: newNameResolver(db)}
}

type activityDoc struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Title       string              `bson:"title"`
	Type        string              `bson:"type"`
	Description string              `bson:"description,omitempty"`
	ScheduledAt time.Time           `bson:"scheduled_at"`
	EndAt       *time.Time          `bson:"end_at,omitempty"`
	AssignedTo  primitive.ObjectID  `bson:"assigned_to"`
	CreatedBy   primitive.ObjectID  `bson:"created_by"`
	RelatedLead *primitive.ObjectID `bson:"related_lead,omitempty"`
	Location    string              `bson:"location,omitempty"`
	IsCompleted bool                `bson:"is_completed"`
	CreatedAt   time.Time           `bson:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}

func (d *activityDoc) toDomain() domain.Activity {
	return domain.Activity{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Type:        domain.ActivityType(d.Type),
		Description: d.Description,
		ScheduledAt: d.ScheduledAt,
		EndAt:       d.EndAt,
		AssignedTo:  d.AssignedTo.Hex(),
		CreatedBy:   d.CreatedBy.Hex(),
		RelatedLead: hexOrEmpty(d.RelatedLead),
		Location:    d.Location,
		IsCompleted: d.IsCompleted,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	assignedTo, err := objectID(activity.AssignedTo)
	if err != nil {
		return nil, err
	}
	createdBy, err := objectID(activity.CreatedBy)
	if err != nil {
		return nil, err
	}
	relatedLead, err := optionalObjectID(activity.RelatedLead)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := activityDoc{
		Title:       activity.Title,
		Type:        string(activity.Type),
		Description: activity.Description,
		ScheduledAt: activity.ScheduledAt.UTC(),
		EndAt:       activity.EndAt,
		AssignedTo:  assignedTo,
		CreatedBy:   createdBy,
		RelatedLead: relatedLead,
		Location:    activity.Location,
		IsCompleted: activity.IsCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)

	out := doc.toDomain()
	if err := r.resolveNames(ctx, []*domain.Activity{&out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ActivityRepository) List(ctx context.Context, filter ports.ListActivitiesFilter) ([]domain.Activity, int64, error) {
	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	scheduled := bson.M{}
	if !filter.From.IsZero() {
		scheduled["$gte"] = filter.From.UTC()
	}
	if !filter.To.IsZero() {
		scheduled["$lte"] = filter.To.UTC()
	}
	if len(scheduled) > 0 {
		query["scheduled_at"] = scheduled
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	skip := int64(filter.Page-1) * int64(filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_at", Value: 1}}).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))

	activities, err := r.findActivities(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func (r *ActivityRepository) FindUpcoming(ctx context.Context, from, to time.Time, limit int) ([]domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{
		"scheduled_at": bson.M{"$gte": from.UTC(), "$lte": to.UTC()},
		"is_completed": false,
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}}).SetLimit(int64(limit))
	return r.findActivities(ctx, query, opts)
}

func (r *ActivityRepository) Update(ctx context.Context, id string, in ports.UpdateActivityInput) (*domain.Activity, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Type != nil {
		set["type"] = string(*in.Type)
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.ScheduledAt != nil {
		set["scheduled_at"] = in.ScheduledAt.UTC()
	}
	if in.EndAt != nil {
		set["end_at"] = in.EndAt.UTC()
	}
	if in.AssignedTo != nil {
		assignedTo, err := objectID(*in.AssignedTo)
		if err != nil {
			return nil, err
		}
		set["assigned_to"] = assignedTo
	}
	if in.RelatedLead != nil {
		relatedLead, err := optionalObjectID(*in.RelatedLead)
		if err != nil {
			return nil, err
		}
		set["related_lead"] = relatedLead
	}
	if in.Location != nil {
		set["location"] = *in.Location
	}
	if in.IsCompleted != nil {
		set["is_completed"] = *in.IsCompleted
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc activityDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("update activity: %w", err)
	}

	out := doc.toDomain()
	if err := r.resolveNames(ctx, []*domain.Activity{&out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepository) findActivities(ctx context.Context, query bson.M, opts *options.FindOptions) ([]domain.Activity, error) {
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find activities: %w", err)
	}
	defer cur.Close(ctx)

	var docs []activityDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}

	activities := make([]domain.Activity, len(docs))
	ptrs := make([]*domain.Activity, len(docs))
	for i := range docs {
		activities[i] = docs[i].toDomain()
		ptrs[i] = &activities[i]
	}
	if err := r.resolveNames(ctx, ptrs); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *ActivityRepository) resolveNames(ctx context.Context, activities []*domain.Activity) error {
	var ids []primitive.ObjectID
	for _, a := range activities {
		for _, ref := range []string{a.AssignedTo, a.CreatedBy} {
			if oid, err := primitive.ObjectIDFromHex(ref); err == nil {
				ids = append(ids, oid)
			}
		}
	}
	names, err := r.names.displayNames(ctx, ids)
	if err != nil {
		return err
	}
	for _, a := range activities {
		a.AssignedToName = names[a.AssignedTo]
		a.CreatedByName = names[a.CreatedBy]
	}
	return nil
}

// EnsureIndexes creates the indexes the activities collection relies on.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "scheduled_at", Value: 1}, {Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	})
	return err
}
