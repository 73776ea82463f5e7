package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskRepository is the MongoDB implementation of ITaskRepository.
type TaskRepository struct {
	collection *mongo.Collection
}

var _ contract.ITaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(collection *mongo.Collection) *TaskRepository {
	return &TaskRepository{collection: collection}
}

func buildTaskFilter(opts *contract.TaskFilter) bson.M {
	var conds []bson.M
	if opts.Scope != nil {
		conds = append(conds, scopePredicate(*opts.Scope))
	}
	if opts.Status != "" {
		conds = append(conds, bson.M{"status": opts.Status})
	}
	if opts.AssignedTo != "" {
		conds = append(conds, bson.M{"assigned_to": opts.AssignedTo})
	}
	if opts.Search != "" {
		conds = append(conds, bson.M{"$or": []bson.M{
			{"title": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"description": bson.M{"$regex": opts.Search, "$options": "i"}},
		}})
	}
	return combine(conds)
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *entity.Task) error {
	_, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetTaskByID(ctx context.Context, id string) (*entity.Task, error) {
	var task entity.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("task not found")
		}
		return nil, err
	}
	return &task, nil
}

// ListTasks returns a page of tasks plus the total match count.
func (r *TaskRepository) ListTasks(ctx context.Context, opts *contract.TaskFilter) ([]*entity.Task, int64, error) {
	filter := buildTaskFilter(opts)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(pageSkip(opts.Page, opts.Limit)).
		SetLimit(pageLimit(opts.Limit))

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []*entity.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, 0, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, total, nil
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id string, updates map[string]interface{}) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("task not found")
	}
	return nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("task not found")
	}
	return nil
}

func (r *TaskRepository) CountTasks(ctx context.Context, scope *string) (int64, error) {
	return r.collection.CountDocuments(ctx, scopeFilter(scope))
}

// CountByStatus groups tasks by workflow status.
func (r *TaskRepository) CountByStatus(ctx context.Context, scope *string) ([]contract.StatusCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: scopeFilter(scope)}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to roll up tasks by status: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []contract.StatusCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode status rollup: %w", err)
	}
	return rows, nil
}
