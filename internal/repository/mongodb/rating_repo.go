package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventhorizon/internal/domain"
)

type ratingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) domain.RatingRepository {
	return &ratingRepository{col: db.Collection(colRatings)}
}

type ratingDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Rate       float64            `bson:"rate"`
	TargetKind string             `bson:"target_kind"`
	TargetID   primitive.ObjectID `bson:"target_id"`
	UserID     primitive.ObjectID `bson:"user_id"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d *ratingDoc) toDomain() *domain.Rating {
	return &domain.Rating{
		ID:   d.ID.Hex(),
		Rate: d.Rate,
		Target: domain.RatingTarget{
			Kind: domain.TargetKind(d.TargetKind),
			ID:   d.TargetID.Hex(),
		},
		UserID:    d.UserID.Hex(),
		CreatedAt: d.CreatedAt,
	}
}

func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	targetOID, err := oidFromHex(rating.Target.ID)
	if err != nil {
		return fmt.Errorf("%w: invalid target id", domain.ErrInvalidInput)
	}
	userOID, err := oidFromHex(rating.UserID)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", domain.ErrInvalidInput)
	}
	doc := ratingDoc{
		Rate:       rating.Rate,
		TargetKind: string(rating.Target.Kind),
		TargetID:   targetOID,
		UserID:     userOID,
		CreatedAt:  rating.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: you have already rated this document", domain.ErrConflict)
		}
		return fmt.Errorf("insert rating: %w", err)
	}
	rating.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id string) (*domain.Rating, error) {
	oid, err := oidFromHex(id)
	if err != nil {
		return nil, err
	}
	var doc ratingDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find rating by id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ratingRepository) ListByTarget(ctx context.Context, target domain.RatingTarget) ([]*domain.Rating, error) {
	targetOID, err := oidFromHex(target.ID)
	if err != nil {
		return []*domain.Rating{}, nil
	}
	filter := bson.M{"target_kind": string(target.Kind), "target_id": targetOID}
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list ratings by target: %w", err)
	}
	defer cur.Close(ctx)

	ratings := []*domain.Rating{}
	for cur.Next(ctx) {
		var doc ratingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		ratings = append(ratings, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

func (r *ratingRepository) Delete(ctx context.Context, id string) error {
	oid, err := oidFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AvgByTarget groups the target's ratings and averages the rate. An empty
// rating set yields no group; that case is returned as 0 so the caller can
// reset the aggregate instead of leaving it stale.
func (r *ratingRepository) AvgByTarget(ctx context.Context, target domain.RatingTarget) (float64, error) {
	targetOID, err := oidFromHex(target.ID)
	if err != nil {
		return 0, nil
	}
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"target_kind": string(target.Kind),
			"target_id":   targetOID,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        "$target_id",
			"avg_rating": bson.M{"$avg": "$rate"},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipe)
	if err != nil {
		return 0, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return 0, fmt.Errorf("aggregate ratings: %w", err)
		}
		return 0, nil
	}
	var row struct {
		AvgRating float64 `bson:"avg_rating"`
	}
	if err := cur.Decode(&row); err != nil {
		return 0, fmt.Errorf("decode rating average: %w", err)
	}
	return row.AvgRating, nil
}
