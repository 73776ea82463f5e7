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

// ClientRepository is the MongoDB implementation of IClientRepository.
type ClientRepository struct {
	collection *mongo.Collection
}

var _ contract.IClientRepository = (*ClientRepository)(nil)

func NewClientRepository(collection *mongo.Collection) *ClientRepository {
	return &ClientRepository{collection: collection}
}

// scopePredicate restricts a query to documents the scoped user created or
// is assigned to.
func scopePredicate(scope string) bson.M {
	return bson.M{"$or": []bson.M{
		{"created_by": scope},
		{"assigned_to": scope},
	}}
}

// combine ANDs a list of predicates into a single filter document.
func combine(conds []bson.M) bson.M {
	switch len(conds) {
	case 0:
		return bson.M{}
	case 1:
		return conds[0]
	default:
		return bson.M{"$and": conds}
	}
}

func scopeFilter(scope *string) bson.M {
	if scope == nil {
		return bson.M{}
	}
	return scopePredicate(*scope)
}

func buildClientFilter(opts *contract.ClientFilter) bson.M {
	var conds []bson.M
	if opts.Scope != nil {
		conds = append(conds, scopePredicate(*opts.Scope))
	}
	if opts.Tag != "" {
		conds = append(conds, bson.M{"tags": opts.Tag})
	}
	if opts.AssignedTo != "" {
		conds = append(conds, bson.M{"assigned_to": opts.AssignedTo})
	}
	if opts.Search != "" {
		conds = append(conds, bson.M{"$or": []bson.M{
			{"name": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"email": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"company": bson.M{"$regex": opts.Search, "$options": "i"}},
		}})
	}
	return combine(conds)
}

func (r *ClientRepository) CreateClient(ctx context.Context, client *entity.Client) error {
	_, err := r.collection.InsertOne(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *ClientRepository) GetClientByID(ctx context.Context, id string) (*entity.Client, error) {
	var client entity.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("client not found")
		}
		return nil, err
	}
	return &client, nil
}

// ListClients returns a page of clients plus the total match count.
func (r *ClientRepository) ListClients(ctx context.Context, opts *contract.ClientFilter) ([]*entity.Client, int64, error) {
	filter := buildClientFilter(opts)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(pageSkip(opts.Page, opts.Limit)).
		SetLimit(pageLimit(opts.Limit))

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []*entity.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, 0, fmt.Errorf("failed to decode clients: %w", err)
	}
	return clients, total, nil
}

func (r *ClientRepository) UpdateClient(ctx context.Context, id string, updates map[string]interface{}) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("client not found")
	}
	return nil
}

func (r *ClientRepository) DeleteClient(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("client not found")
	}
	return nil
}

func (r *ClientRepository) CountClients(ctx context.Context, scope *string) (int64, error) {
	return r.collection.CountDocuments(ctx, scopeFilter(scope))
}
