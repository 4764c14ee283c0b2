package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	shiftreporterrors "carebook/internal/shiftreports/errors"
	"carebook/pkg/config"
	"carebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "ShiftReports"
)

type mongoShiftReportRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ShiftReportRepository interface {
	Create(ctx context.Context, report *model.ShiftReport) error
	FindByID(ctx context.Context, id string) (*model.ShiftReport, error)
	FindByBooking(ctx context.Context, bookingID string) ([]*model.ShiftReport, error)
	FindByCarer(ctx context.Context, carerID string, limit int, offset int64) ([]*model.ShiftReport, error)
}

func NewMongoShiftReportRepository(cfg *config.Config) ShiftReportRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoShiftReportRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoShiftReportRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoShiftReportRepository) Create(ctx context.Context, report *model.ShiftReport) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	report.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to create shift report: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid.Hex()
	}
	return nil
}

func (r *mongoShiftReportRepository) FindByID(ctx context.Context, id string) (*model.ShiftReport, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shiftreporterrors.ErrInvalidID, id)
	}

	var report model.ShiftReport
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", shiftreporterrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find shift report: %w", err)
	}
	return &report, nil
}

func (r *mongoShiftReportRepository) FindByBooking(ctx context.Context, bookingID string) ([]*model.ShiftReport, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []*model.ShiftReport
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode shift reports: %w", err)
	}
	return reports, nil
}

func (r *mongoShiftReportRepository) FindByCarer(ctx context.Context, carerID string, limit int, offset int64) ([]*model.ShiftReport, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "completed_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"carer_id": carerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []*model.ShiftReport
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode shift reports: %w", err)
	}
	return reports, nil
}
