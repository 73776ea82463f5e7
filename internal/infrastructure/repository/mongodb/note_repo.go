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

// NoteRepository is the MongoDB implementation of INoteRepository.
type NoteRepository struct {
	collection *mongo.Collection
}

var _ contract.INoteRepository = (*NoteRepository)(nil)

func NewNoteRepository(collection *mongo.Collection) *NoteRepository {
	return &NoteRepository{collection: collection}
}

func buildNoteFilter(opts *contract.NoteFilter) bson.M {
	var conds []bson.M
	if opts.Scope != nil {
		// Notes have no assignee; the scope is ownership only.
		conds = append(conds, bson.M{"created_by": *opts.Scope})
	}
	if opts.Tag != "" {
		conds = append(conds, bson.M{"tags": opts.Tag})
	}
	if opts.PinnedBy != "" {
		conds = append(conds, bson.M{"pinned_by": opts.PinnedBy})
	}
	if opts.Search != "" {
		conds = append(conds, bson.M{"$or": []bson.M{
			{"title": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"content": bson.M{"$regex": opts.Search, "$options": "i"}},
		}})
	}
	return combine(conds)
}

func (r *NoteRepository) CreateNote(ctx context.Context, note *entity.Note) error {
	_, err := r.collection.InsertOne(ctx, note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *NoteRepository) GetNoteByID(ctx context.Context, id string) (*entity.Note, error) {
	var note entity.Note
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("note not found")
		}
		return nil, err
	}
	return &note, nil
}

// ListNotes returns a page of notes plus the total match count.
func (r *NoteRepository) ListNotes(ctx context.Context, opts *contract.NoteFilter) ([]*entity.Note, int64, error) {
	filter := buildNoteFilter(opts)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notes: %w", err)
	}

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(pageSkip(opts.Page, opts.Limit)).
		SetLimit(pageLimit(opts.Limit))

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	defer cursor.Close(ctx)

	var notes []*entity.Note
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, 0, fmt.Errorf("failed to decode notes: %w", err)
	}
	return notes, total, nil
}

func (r *NoteRepository) UpdateNote(ctx context.Context, id string, updates map[string]interface{}) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("note not found")
	}
	return nil
}

func (r *NoteRepository) DeleteNote(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("note not found")
	}
	return nil
}

// SetPinned adds or removes the user id from the note's pinned_by list.
// $addToSet/$pull keep repeated calls idempotent.
func (r *NoteRepository) SetPinned(ctx context.Context, id, userID string, pinned bool) error {
	var update bson.M
	if pinned {
		update = bson.M{"$addToSet": bson.M{"pinned_by": userID}}
	} else {
		update = bson.M{"$pull": bson.M{"pinned_by": userID}}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update note pin state: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("note not found")
	}
	return nil
}

func (r *NoteRepository) CountNotes(ctx context.Context, scope *string) (int64, error) {
	filter := bson.M{}
	if scope != nil {
		filter["created_by"] = *scope
	}
	return r.collection.CountDocuments(ctx, filter)
}
