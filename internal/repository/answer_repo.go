package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"excelinterview/internal/model"
)

// AnswerRepo is the append-only answer log. Counts reflect every
// previously appended row, including rows appended earlier in the same
// logical operation.
type AnswerRepo interface {
	Append(ctx context.Context, answer *model.Answer) error
	CountMain(ctx context.Context, sessionID string) (int, error)
	CountFollowUps(ctx context.Context, sessionID string) (int, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]*model.Answer, error)

	// AnsweredQuestionIDs returns the distinct non-null catalog ids
	// already answered in the session, main or follow-up.
	AnsweredQuestionIDs(ctx context.Context, sessionID string) ([]int64, error)
}

type answerRepo struct {
	collection *mongo.Collection
}

// NewAnswerRepo creates a new answer repository
func NewAnswerRepo(db *mongo.Database) AnswerRepo {
	return &answerRepo{
		collection: db.Collection("answers"),
	}
}

func (r *answerRepo) Append(ctx context.Context, answer *model.Answer) error {
	if answer.CreatedAt.IsZero() {
		answer.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, answer)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		answer.ID = oid.Hex()
	}
	return nil
}

func (r *answerRepo) CountMain(ctx context.Context, sessionID string) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"sessionId": sessionID, "isFollowup": false})
	return int(n), err
}

func (r *answerRepo) CountFollowUps(ctx context.Context, sessionID string) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"sessionId": sessionID, "isFollowup": true})
	return int(n), err
}

func (r *answerRepo) GetBySessionID(ctx context.Context, sessionID string) ([]*model.Answer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []*model.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepo) AnsweredQuestionIDs(ctx context.Context, sessionID string) ([]int64, error) {
	filter := bson.M{"sessionId": sessionID, "questionId": bson.M{"$ne": nil}}
	values, err := r.collection.Distinct(ctx, "questionId", filter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(values))
	for _, v := range values {
		switch n := v.(type) {
		case int64:
			ids = append(ids, n)
		case int32:
			ids = append(ids, int64(n))
		}
	}
	return ids, nil
}
