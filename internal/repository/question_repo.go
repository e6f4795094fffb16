package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"excelinterview/internal/model"
)

// QuestionRepo handles MongoDB operations for the question catalog.
// The catalog is read-only from the engine's perspective; writes happen
// only through the seeder.
type QuestionRepo interface {
	Create(ctx context.Context, question *model.Question) error
	GetByID(ctx context.Context, id int64) (*model.Question, error)

	// NextUnanswered returns the first catalog question at the given
	// difficulty whose id is not in excludeIDs, in insertion (id) order.
	// Returns nil when the difficulty is exhausted.
	NextUnanswered(ctx context.Context, difficulty string, excludeIDs []int64) (*model.Question, error)

	Count(ctx context.Context) (int64, error)
	GetByDifficulty(ctx context.Context, difficulty string) ([]*model.Question, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) Create(ctx context.Context, question *model.Question) error {
	_, err := r.collection.InsertOne(ctx, question)
	return err
}

func (r *questionRepo) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) NextUnanswered(ctx context.Context, difficulty string, excludeIDs []int64) (*model.Question, error) {
	if excludeIDs == nil {
		excludeIDs = []int64{}
	}

	filter := bson.M{
		"difficulty": difficulty,
		"_id":        bson.M{"$nin": excludeIDs},
	}

	var question model.Question
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	err := r.collection.FindOne(ctx, filter, opts).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *questionRepo) GetByDifficulty(ctx context.Context, difficulty string) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"difficulty": difficulty})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
