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

const leadsCollection = "leads"

type LeadRepository struct {
	coll  *mongo.Collection
	names nameResolver
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{coll: db.Collection(leadsCollection), names: newNameResolver(db)}
}

type leadDoc struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty"`
	CustomerName    string              `bson:"customer_name"`
	Email           string              `bson:"email,omitempty"`
	Phone           string              `bson:"phone,omitempty"`
	Channel         string              `bson:"channel"`
	Status          string              `bson:"status"`
	Subject         string              `bson:"subject,omitempty"`
	Message         string              `bson:"message"`
	AssignedTo      *primitive.ObjectID `bson:"assigned_to,omitempty"`
	VehicleInterest string              `bson:"vehicle_interest,omitempty"`
	Source          string              `bson:"source,omitempty"`
	CreatedAt       time.Time           `bson:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at"`
}

func (d *leadDoc) toDomain() domain.Lead {
	return domain.Lead{
		ID:              d.ID.Hex(),
		CustomerName:    d.CustomerName,
		Email:           d.Email,
		Phone:           d.Phone,
		Channel:         domain.LeadChannel(d.Channel),
		Status:          domain.LeadStatus(d.Status),
		Subject:         d.Subject,
		Message:         d.Message,
		AssignedTo:      hexOrEmpty(d.AssignedTo),
		VehicleInterest: d.VehicleInterest,
		Source:          d.Source,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	assignedTo, err := optionalObjectID(lead.AssignedTo)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := leadDoc{
		CustomerName:    lead.CustomerName,
		Email:           lead.Email,
		Phone:           lead.Phone,
		Channel:         string(lead.Channel),
		Status:          string(lead.Status),
		Subject:         lead.Subject,
		Message:         lead.Message,
		AssignedTo:      assignedTo,
		VehicleInterest: lead.VehicleInterest,
		Source:          lead.Source,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)

	out := doc.toDomain()
	return &out, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*domain.Lead, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc leadDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}

	out := doc.toDomain()
	if err := r.resolveNames(ctx, []*domain.Lead{&out}, []leadDoc{doc}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LeadRepository) List(ctx context.Context, filter ports.ListLeadsFilter) ([]domain.Lead, int64, error) {
	query := bson.M{}
	if filter.Channel != "" {
		query["channel"] = filter.Channel
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	skip := int64(filter.Page-1) * int64(filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))

	docs, err := r.findDocs(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	leads, err := r.toDomainSlice(ctx, docs)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func (r *LeadRepository) FindRecentByChannel(ctx context.Context, channel domain.LeadChannel, limit int) ([]domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	docs, err := r.findDocs(ctx, bson.M{"channel": string(channel)}, opts)
	if err != nil {
		return nil, err
	}
	return r.toDomainSlice(ctx, docs)
}

func (r *LeadRepository) Update(ctx context.Context, id string, in ports.UpdateLeadInput) (*domain.Lead, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.CustomerName != nil {
		set["customer_name"] = *in.CustomerName
	}
	if in.Email != nil {
		set["email"] = *in.Email
	}
	if in.Phone != nil {
		set["phone"] = *in.Phone
	}
	if in.Status != nil {
		set["status"] = string(*in.Status)
	}
	if in.Subject != nil {
		set["subject"] = *in.Subject
	}
	if in.Message != nil {
		set["message"] = *in.Message
	}
	if in.AssignedTo != nil {
		assignedTo, err := optionalObjectID(*in.AssignedTo)
		if err != nil {
			return nil, err
		}
		set["assigned_to"] = assignedTo
	}
	if in.VehicleInterest != nil {
		set["vehicle_interest"] = *in.VehicleInterest
	}
	if in.Source != nil {
		set["source"] = *in.Source
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc leadDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("update lead: %w", err)
	}

	out := doc.toDomain()
	if err := r.resolveNames(ctx, []*domain.Lead{&out}, []leadDoc{doc}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) findDocs(ctx context.Context, query bson.M, opts *options.FindOptions) ([]leadDoc, error) {
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find leads: %w", err)
	}
	defer cur.Close(ctx)

	var docs []leadDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return docs, nil
}

func (r *LeadRepository) toDomainSlice(ctx context.Context, docs []leadDoc) ([]domain.Lead, error) {
	leads := make([]domain.Lead, len(docs))
	ptrs := make([]*domain.Lead, len(docs))
	for i := range docs {
		leads[i] = docs[i].toDomain()
		ptrs[i] = &leads[i]
	}
	if err := r.resolveNames(ctx, ptrs, docs); err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *LeadRepository) resolveNames(ctx context.Context, leads []*domain.Lead, docs []leadDoc) error {
	var ids []primitive.ObjectID
	for _, d := range docs {
		if d.AssignedTo != nil {
			ids = append(ids, *d.AssignedTo)
		}
	}
	names, err := r.names.displayNames(ctx, ids)
	if err != nil {
		return err
	}
	for _, l := range leads {
		l.AssignedToName = names[l.AssignedTo]
	}
	return nil
}

// EnsureIndexes creates the indexes the leads collection relies on.
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "channel", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
	})
	return err
}
