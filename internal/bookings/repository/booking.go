package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "tablebot/internal/bookings/errors"
	"tablebot/pkg/config"
	"tablebot/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName         = "Bookings"
	CountersCollectionName = "Counters"

	bookingSequence = "bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	FindActiveByCustomer(ctx context.Context, customerName string) ([]*model.Booking, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	UpdateField(ctx context.Context, id int64, field model.BookingField, value any) (bool, error)
	DietaryPreference(ctx context.Context, customerName string) (model.Dietary, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		counters:   db.Collection(CountersCollectionName),
	}
}

// withTimeout bounds ctx by timeout without extending an earlier deadline.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": bookingSequence},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate booking id: %w", err)
	}
	return counter.Seq, nil
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return 0, err
	}

	doc := booking.Clone()
	doc.ID = id
	doc.Active = true
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ID = doc.ID
	booking.Active = doc.Active
	booking.CreatedAt = doc.CreatedAt
	return id, nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var booking model.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindActiveByCustomer(ctx context.Context, customerName string) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"customer_name": customerName, "active": true}
	opts := options.Find().SetSort(bson.D{
		{Key: "booking_date", Value: 1},
		{Key: "booking_time", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "active": true}
	update := bson.M{"$set": bson.M{"active": false}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *mongoBookingRepository) UpdateField(ctx context.Context, id int64, field model.BookingField, value any) (bool, error) {
	column, ok := field.Column()
	if !ok {
		return false, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidField, field)
	}

	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "active": true}
	update := bson.M{"$set": bson.M{column: value}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update booking: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// DietaryPreference returns the dietary value shared by at least two active
// bookings of the customer. Ties resolve to the alphabetically first value.
func (r *mongoBookingRepository) DietaryPreference(ctx context.Context, customerName string) (model.Dietary, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"customer_name": customerName, "active": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$dietary", "count": bson.M{"$sum": 1}}}},
		{{Key: "$match", Value: bson.M{"count": bson.M{"$gte": 2}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: 1}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return "", fmt.Errorf("failed to aggregate dietary preference: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Dietary model.Dietary `bson:"_id"`
		Count   int           `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return "", fmt.Errorf("failed to decode dietary preference: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].Dietary, nil
}
