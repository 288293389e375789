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

type eventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) domain.EventRepository {
	return &eventRepository{col: db.Collection(colEvents)}
}

type eventDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Cost        float64            `bson:"cost"`
	UserID      primitive.ObjectID `bson:"user_id"`
	Address     string             `bson:"address"`
	Lat         float64            `bson:"lat"`
	Lng         float64            `bson:"lng"`
	SumLength   float64            `bson:"sum_length"`
	AvgRating   float64            `bson:"avg_rating"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *eventDoc) toDomain() *domain.Event {
	return &domain.Event{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Cost:        d.Cost,
		UserID:      d.UserID.Hex(),
		Address:     d.Address,
		Lat:         d.Lat,
		Lng:         d.Lng,
		SumLength:   d.SumLength,
		AvgRating:   d.AvgRating,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	ownerOID, err := oidFromHex(e.UserID)
	if err != nil {
		return fmt.Errorf("%w: invalid owner id", domain.ErrInvalidInput)
	}
	doc := eventDoc{
		Name:        e.Name,
		Description: e.Description,
		Cost:        e.Cost,
		UserID:      ownerOID,
		Address:     e.Address,
		Lat:         e.Lat,
		Lng:         e.Lng,
		SumLength:   e.SumLength,
		AvgRating:   e.AvgRating,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: event name already taken", domain.ErrConflict)
		}
		return fmt.Errorf("insert event: %w", err)
	}
	e.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := oidFromHex(id)
	if err != nil {
		return nil, err
	}
	var doc eventDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	query := bson.M{}
	if filter.MaxCost != nil {
		query["cost"] = bson.M{"$lte": *filter.MaxCost}
	}
	if filter.OwnerID != "" {
		oid, err := oidFromHex(filter.OwnerID)
		if err != nil {
			return []*domain.Event{}, 0, nil
		}
		query["user_id"] = oid
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.PageSize))
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	events := []*domain.Event{}
	for cur.Next(ctx) {
		var doc eventDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate events: %w", err)
	}
	return events, int(total), nil
}

// Update writes the client-writable fields. The owner reference and the
// derived fields are deliberately excluded from the $set.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	oid, err := oidFromHex(e.ID)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"name":        e.Name,
		"description": e.Description,
		"cost":        e.Cost,
		"address":     e.Address,
		"lat":         e.Lat,
		"lng":         e.Lng,
		"updated_at":  e.UpdatedAt,
	}}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: event name already taken", domain.ErrConflict)
		}
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	oid, err := oidFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) SetSumLength(ctx context.Context, id string, sum float64) error {
	return r.setDerived(ctx, id, "sum_length", sum)
}

func (r *eventRepository) SetAvgRating(ctx context.Context, id string, avg float64) error {
	return r.setDerived(ctx, id, "avg_rating", avg)
}

// setDerived writes a single derived field. A missing document is reported as
// ErrNotFound so the aggregate maintainer can log a concurrent deletion.
func (r *eventRepository) setDerived(ctx context.Context, id, field string, value float64) error {
	oid, err := oidFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("set event %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
