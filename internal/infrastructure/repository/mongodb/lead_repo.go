package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LeadRepository is the MongoDB implementation of ILeadRepository.
type LeadRepository struct {
	collection *mongo.Collection
}

var _ contract.ILeadRepository = (*LeadRepository)(nil)

func NewLeadRepository(collection *mongo.Collection) *LeadRepository {
	return &LeadRepository{collection: collection}
}

func buildLeadFilter(opts *contract.LeadFilter) bson.M {
	var conds []bson.M
	if opts.Scope != nil {
		conds = append(conds, scopePredicate(*opts.Scope))
	}
	if opts.Stage != "" {
		conds = append(conds, bson.M{"stage": opts.Stage})
	}
	if opts.Source != "" {
		conds = append(conds, bson.M{"source": opts.Source})
	}
	if opts.AssignedTo != "" {
		conds = append(conds, bson.M{"assigned_to": opts.AssignedTo})
	}
	if opts.Search != "" {
		conds = append(conds, bson.M{"$or": []bson.M{
			{"title": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"contact_name": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"email": bson.M{"$regex": opts.Search, "$options": "i"}},
		}})
	}
	return combine(conds)
}

func (r *LeadRepository) CreateLead(ctx context.Context, lead *entity.Lead) error {
	_, err := r.collection.InsertOne(ctx, lead)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) GetLeadByID(ctx context.Context, id string) (*entity.Lead, error) {
	var lead entity.Lead
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&lead)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("lead not found")
		}
		return nil, err
	}
	return &lead, nil
}

// ListLeads returns a page of leads plus the total match count.
func (r *LeadRepository) ListLeads(ctx context.Context, opts *contract.LeadFilter) ([]*entity.Lead, int64, error) {
	filter := buildLeadFilter(opts)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(pageSkip(opts.Page, opts.Limit)).
		SetLimit(pageLimit(opts.Limit))

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}
	defer cursor.Close(ctx)

	var leads []*entity.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, 0, fmt.Errorf("failed to decode leads: %w", err)
	}
	return leads, total, nil
}

func (r *LeadRepository) UpdateLead(ctx context.Context, id string, updates map[string]interface{}) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("lead not found")
	}
	return nil
}

func (r *LeadRepository) DeleteLead(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("lead not found")
	}
	return nil
}

func (r *LeadRepository) CountLeads(ctx context.Context, scope *string) (int64, error) {
	return r.collection.CountDocuments(ctx, scopeFilter(scope))
}

// CountByStage groups leads by stage.
func (r *LeadRepository) CountByStage(ctx context.Context, scope *string) ([]contract.StageCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: scopeFilter(scope)}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$stage", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to roll up leads by stage: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []contract.StageCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode stage rollup: %w", err)
	}
	return rows, nil
}

// CountBySource groups leads by source.
func (r *LeadRepository) CountBySource(ctx context.Context, scope *string) ([]contract.SourceCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: scopeFilter(scope)}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$source", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to roll up leads by source: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []contract.SourceCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode source rollup: %w", err)
	}
	return rows, nil
}

// CountByMonth groups leads created in the given year by calendar month.
func (r *LeadRepository) CountByMonth(ctx context.Context, scope *string, year int) ([]contract.MonthCount, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	match := scopeFilter(scope)
	match["created_at"] = bson.M{"$gte": from, "$lt": to}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$month": "$created_at"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to roll up leads by month: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []contract.MonthCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode month rollup: %w", err)
	}
	return rows, nil
}

func (r *LeadRepository) CountCreatedBetween(ctx context.Context, scope *string, from, to time.Time) (int64, error) {
	filter := scopeFilter(scope)
	filter["created_at"] = bson.M{"$gte": from, "$lt": to}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *LeadRepository) CountWonBetween(ctx context.Context, scope *string, from, to time.Time) (int64, error) {
	filter := scopeFilter(scope)
	filter["stage"] = string(entity.LeadStageWon)
	filter["updated_at"] = bson.M{"$gte": from, "$lt": to}
	return r.collection.CountDocuments(ctx, filter)
}
