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

type lectureRepository struct {
	col *mongo.Collection
}

func NewLectureRepository(db *mongo.Database) domain.LectureRepository {
	return &lectureRepository{col: db.Collection(colLectures)}
}

type lectureDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Length      float64            `bson:"length"`
	EventID     primitive.ObjectID `bson:"event_id"`
	UserID      primitive.ObjectID `bson:"user_id"`
	AvgRating   float64            `bson:"avg_rating"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *lectureDoc) toDomain() *domain.Lecture {
	return &domain.Lecture{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Length:      d.Length,
		EventID:     d.EventID.Hex(),
		UserID:      d.UserID.Hex(),
		AvgRating:   d.AvgRating,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *lectureRepository) Create(ctx context.Context, l *domain.Lecture) error {
	eventOID, err := oidFromHex(l.EventID)
	if err != nil {
		return fmt.Errorf("%w: invalid event id", domain.ErrInvalidInput)
	}
	ownerOID, err := oidFromHex(l.UserID)
	if err != nil {
		return fmt.Errorf("%w: invalid owner id", domain.ErrInvalidInput)
	}
	doc := lectureDoc{
		Name:        l.Name,
		Description: l.Description,
		Length:      l.Length,
		EventID:     eventOID,
		UserID:      ownerOID,
		AvgRating:   l.AvgRating,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert lecture: %w", err)
	}
	l.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *lectureRepository) GetByID(ctx context.Context, id string) (*domain.Lecture, error) {
	oid, err := oidFromHex(id)
	if err != nil {
		return nil, err
	}
	var doc lectureDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lecture by id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *lectureRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Lecture, int, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count lectures: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.PageSize))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list lectures: %w", err)
	}
	defer cur.Close(ctx)

	lectures := []*domain.Lecture{}
	for cur.Next(ctx) {
		var doc lectureDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode lecture: %w", err)
		}
		lectures = append(lectures, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate lectures: %w", err)
	}
	return lectures, int(total), nil
}

func (r *lectureRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Lecture, error) {
	eventOID, err := oidFromHex(eventID)
	if err != nil {
		return []*domain.Lecture{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"event_id": eventOID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list lectures by event: %w", err)
	}
	defer cur.Close(ctx)

	lectures := []*domain.Lecture{}
	for cur.Next(ctx) {
		var doc lectureDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode lecture: %w", err)
		}
		lectures = append(lectures, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate lectures: %w", err)
	}
	return lectures, nil
}

// Update writes the client-writable fields. The event reference and owner
// are immutable.
func (r *lectureRepository) Update(ctx context.Context, l *domain.Lecture) error {
	oid, err := oidFromHex(l.ID)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"name":        l.Name,
		"description": l.Description,
		"length":      l.Length,
		"updated_at":  l.UpdatedAt,
	}}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update lecture: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *lectureRepository) Delete(ctx context.Context, id string) error {
	oid, err := oidFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete lecture: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *lectureRepository) DeleteByEventID(ctx context.Context, eventID string) (int, error) {
	eventOID, err := oidFromHex(eventID)
	if err != nil {
		return 0, nil
	}
	res, err := r.col.DeleteMany(ctx, bson.M{"event_id": eventOID})
	if err != nil {
		return 0, fmt.Errorf("delete lectures by event: %w", err)
	}
	return int(res.DeletedCount), nil
}

// SumLengthByEventID groups the event's lectures and sums their lengths.
// With no matching lectures the pipeline yields no group at all; that case
// is returned as 0 so the caller writes a zero aggregate instead of skipping
// the update.
func (r *lectureRepository) SumLengthByEventID(ctx context.Context, eventID string) (float64, error) {
	eventOID, err := oidFromHex(eventID)
	if err != nil {
		return 0, nil
	}
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"event_id": eventOID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        "$event_id",
			"sum_length": bson.M{"$sum": "$length"},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipe)
	if err != nil {
		return 0, fmt.Errorf("aggregate lecture lengths: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return 0, fmt.Errorf("aggregate lecture lengths: %w", err)
		}
		return 0, nil
	}
	var row struct {
		SumLength float64 `bson:"sum_length"`
	}
	if err := cur.Decode(&row); err != nil {
		return 0, fmt.Errorf("decode lecture length sum: %w", err)
	}
	return row.SumLength, nil
}

func (r *lectureRepository) SetAvgRating(ctx context.Context, id string, avg float64) error {
	oid, err := oidFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"avg_rating": avg}})
	if err != nil {
		return fmt.Errorf("set lecture avg_rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
