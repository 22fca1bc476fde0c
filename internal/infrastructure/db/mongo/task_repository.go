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

const tasksCollection = "tasks"

type TaskRepository struct {
	coll  *mongo.Collection
	names nameResolver
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection), names: newNameResolver(db)}
}

type taskDoc struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Title       string              `bson:"title"`
	Description string              `bson:"description,omitempty"`
	Status      string              `bson:"status"`
	Priority    string              `bson:"priority"`
	AssignedTo  primitive.ObjectID  `bson:"assigned_to"`
	CreatedBy   primitive.ObjectID  `bson:"created_by"`
	DueDate     time.Time           `bson:"due_date"`
	CompletedAt *time.Time          `bson:"completed_at,omitempty"`
	RelatedLead *primitive.ObjectID `bson:"related_lead,omitempty"`
	CreatedAt   time.Time           `bson:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}

func (d *taskDoc) toDomain() domain.Task {
	return domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.TaskStatus(d.Status),
		Priority:    domain.TaskPriority(d.Priority),
		AssignedTo:  d.AssignedTo.Hex(),
		CreatedBy:   d.CreatedBy.Hex(),
		DueDate:     d.DueDate,
		CompletedAt: d.CompletedAt,
		RelatedLead: hexOrEmpty(d.RelatedLead),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	assignedTo, err := objectID(task.AssignedTo)
	if err != nil {
		return nil, err
	}
	createdBy, err := objectID(task.CreatedBy)
	if err != nil {
		return nil, err
	}
	relatedLead, err := optionalObjectID(task.RelatedLead)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := taskDoc{
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		AssignedTo:  assignedTo,
		CreatedBy:   createdBy,
		DueDate:     task.DueDate.UTC(),
		RelatedLead: relatedLead,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)

	out := doc.toDomain()
	if err := r.resolveNames(ctx, []*domain.Task{&out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *TaskRepository) List(ctx context.Context, filter ports.ListTasksFilter) ([]domain.Task, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	skip := int64(filter.Page-1) * int64(filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "due_date", Value: 1}}).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))

	tasks, err := r.findTasks(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepository) FindOpenByDue(ctx context.Context, limit int) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"status": bson.M{"$in": []string{
		string(domain.TaskStatusPending),
		string(domain.TaskStatusInProgress),
	}}}
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}}).SetLimit(int64(limit))
	return r.findTasks(ctx, query, opts)
}

func (r *TaskRepository) FindOverdue(ctx context.Context, now time.Time, limit int) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{
		"status":   bson.M{"$ne": string(domain.TaskStatusCompleted)},
		"due_date": bson.M{"$lt": now.UTC()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}}).SetLimit(int64(limit))
	return r.findTasks(ctx, query, opts)
}

func (r *TaskRepository) Update(ctx context.Context, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Status != nil {
		set["status"] = string(*in.Status)
	}
	if in.Priority != nil {
		set["priority"] = string(*in.Priority)
	}
	if in.AssignedTo != nil {
		assignedTo, err := objectID(*in.AssignedTo)
		if err != nil {
			return nil, err
		}
		set["assigned_to"] = assignedTo
	}
	if in.DueDate != nil {
		set["due_date"] = in.DueDate.UTC()
	}
	if in.RelatedLead != nil {
		relatedLead, err := optionalObjectID(*in.RelatedLead)
		if err != nil {
			return nil, err
		}
		set["related_lead"] = relatedLead
	}
	// Completion stamp is one-way: set when provided, never unset.
	if in.CompletedAt != nil {
		set["completed_at"] = in.CompletedAt.UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taskDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	out := doc.toDomain()
	if err := r.resolveNames(ctx, []*domain.Task{&out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) findTasks(ctx context.Context, query bson.M, opts *options.FindOptions) ([]domain.Task, error) {
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]domain.Task, len(docs))
	ptrs := make([]*domain.Task, len(docs))
	for i := range docs {
		tasks[i] = docs[i].toDomain()
		ptrs[i] = &tasks[i]
	}
	if err := r.resolveNames(ctx, ptrs); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) resolveNames(ctx context.Context, tasks []*domain.Task) error {
	var ids []primitive.ObjectID
	for _, t := range tasks {
		for _, ref := range []string{t.AssignedTo, t.CreatedBy} {
			if oid, err := primitive.ObjectIDFromHex(ref); err == nil {
				ids = append(ids, oid)
			}
		}
	}
	names, err := r.names.displayNames(ctx, ids)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		t.AssignedToName = names[t.AssignedTo]
		t.CreatedByName = names[t.CreatedBy]
	}
	return nil
}

// EnsureIndexes creates the indexes the tasks collection relies on.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: 1}}},
	})
	return err
}
