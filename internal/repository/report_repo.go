package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"excelinterview/internal/model"
)

// ReportRepo handles MongoDB operations for interview reports
type ReportRepo interface {
	Save(ctx context.Context, report *model.InterviewReport) error
	GetBySessionID(ctx context.Context, sessionID string) (*model.InterviewReport, error)
}

type reportRepo struct {
	collection *mongo.Collection
}

// NewReportRepo creates a new report repository
func NewReportRepo(db *mongo.Database) ReportRepo {
	return &reportRepo{
		collection: db.Collection("reports"),
	}
}

// Save upserts by session id: regenerating a report replaces the prior
// artifact record rather than duplicating it.
func (r *reportRepo) Save(ctx context.Context, report *model.InterviewReport) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": report.SessionID}, report, opts)
	return err
}

func (r *reportRepo) GetBySessionID(ctx context.Context, sessionID string) (*model.InterviewReport, error) {
	var report model.InterviewReport
	err := r.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
