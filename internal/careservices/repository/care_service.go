package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	careserviceerrors "carebook/internal/careservices/errors"
	"carebook/pkg/config"
	mongotx "carebook/pkg/db/mongo"
	"carebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "CareServices"
)

type mongoCareServiceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type CareServiceRepository interface {
	Create(ctx context.Context, cs *model.CareService) error
	FindByID(ctx context.Context, id string) (*model.CareService, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.CareService, error)
	FindByName(ctx context.Context, name string) ([]*model.CareService, error)
	Update(ctx context.Context, id string, cs *model.CareService) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoCareServiceRepository(cfg *config.Config) CareServiceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCareServiceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoCareServiceRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCareServiceRepository) Create(ctx context.Context, cs *model.CareService) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	cs.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, cs)
	if err != nil {
		return fmt.Errorf("failed to create care service: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		cs.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCareServiceRepository) FindByID(ctx context.Context, id string) (*model.CareService, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", careserviceerrors.ErrInvalidID, id)
	}

	var cs model.CareService
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&cs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", careserviceerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find care service: %w", err)
	}
	return &cs, nil
}

func (r *mongoCareServiceRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.CareService, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query care services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []*model.CareService
	if err = cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode care services: %w", err)
	}
	return services, nil
}

// FindByName matches names case-insensitively. The input is escaped so user
// text cannot inject regex metacharacters.
func (r *mongoCareServiceRepository) FindByName(ctx context.Context, name string) ([]*model.CareService, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"name": bson.M{
			"$regex":   "^" + regexp.QuoteMeta(name) + "$",
			"$options": "i",
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query care services by name: %w", err)
	}
	defer cursor.Close(ctx)

	var services []*model.CareService
	if err = cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode care services: %w", err)
	}
	return services, nil
}

func (r *mongoCareServiceRepository) Update(ctx context.Context, id string, cs *model.CareService) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", careserviceerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":              cs.Name,
			"description":       cs.Description,
			"duration_minutes":  cs.DurationMinutes,
			"hourly_rate_pence": cs.HourlyRatePence,
			"active":            cs.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update care service: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", careserviceerrors.ErrNotFound, id)
	}
	return result, nil
}

func (r *mongoCareServiceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", careserviceerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete care service: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", careserviceerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoCareServiceRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count care services: %w", err)
	}
	return count, nil
}

func (r *mongoCareServiceRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
