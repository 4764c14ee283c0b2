package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilityerrors "carebook/internal/availability/errors"
	"carebook/pkg/config"
	"carebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "CarerDays"
)

type mongoCarerDayRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type CarerDayRepository interface {
	Upsert(ctx context.Context, day *model.CarerDay) error
	FindByCarerAndDate(ctx context.Context, carerID string, date time.Time) (*model.CarerDay, error)
	FindByCarerAndRange(ctx context.Context, carerID string, from, to time.Time) ([]*model.CarerDay, error)
	Delete(ctx context.Context, id string) error
}

func NewMongoCarerDayRepository(cfg *config.Config) CarerDayRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCarerDayRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoCarerDayRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Upsert replaces the snapshot for the carer and date, creating it when
// missing. One document per carer per calendar date.
func (r *mongoCarerDayRepository) Upsert(ctx context.Context, day *model.CarerDay) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	day.Date = truncateToDate(day.Date)
	if day.CreatedAt.IsZero() {
		day.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	filter := bson.M{
		"carer_id": day.CarerID,
		"date":     day.Date,
	}
	update := bson.M{
		"$set": bson.M{
			"carer_id":  day.CarerID,
			"date":      day.Date,
			"time_zone": day.TimeZone,
			"slots":     day.Slots,
		},
		"$setOnInsert": bson.M{
			"created_at": day.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert carer day: %w", err)
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		day.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCarerDayRepository) FindByCarerAndDate(ctx context.Context, carerID string, date time.Time) (*model.CarerDay, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"carer_id": carerID,
		"date":     truncateToDate(date),
	}

	var day model.CarerDay
	err := r.collection.FindOne(ctx, filter).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: carer %s on %s", availabilityerrors.ErrNotFound, carerID, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find carer day: %w", err)
	}
	return &day, nil
}

func (r *mongoCarerDayRepository) FindByCarerAndRange(ctx context.Context, carerID string, from, to time.Time) ([]*model.CarerDay, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"carer_id": carerID,
		"date": bson.M{
			"$gte": truncateToDate(from),
			"$lt":  truncateToDate(to),
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query carer days: %w", err)
	}
	defer cursor.Close(ctx)

	var days []*model.CarerDay
	if err = cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("failed to decode carer days: %w", err)
	}
	return days, nil
}

func (r *mongoCarerDayRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", availabilityerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete carer day: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", availabilityerrors.ErrNotFound, id)
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
