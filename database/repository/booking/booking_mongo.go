package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"imara/database"
	"imara/models"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs the repository and ensures its indexes.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database("imara").Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) GetByClient(ctx context.Context, clientID string, status models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"clientId": clientID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "start", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching client bookings: %w", err)
	}
	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding client bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) GetByBusiness(ctx context.Context, businessID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"businessId": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching business bookings: %w", err)
	}
	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding business bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) GetDayBookings(ctx context.Context, businessID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"businessId": businessID, "date": date}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching day bookings for %s on %s: %w", businessID, date, err)
	}
	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding day bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s status: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}

func (r *MongoBookingRepo) Cancel(ctx context.Context, bookingID, reason, cancelledBy string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":             models.BookingCancelled,
		"cancellationReason": reason,
		"cancelledBy":        cancelledBy,
		"updatedAt":          time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("error cancelling booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}
