package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"imara/models"
)

// ErrSlotTaken is returned when the commit-time overlap re-check finds a
// blocking booking the advisory check missed.
var ErrSlotTaken = errors.New("slot no longer available")

// CreateIfAvailable inserts the booking only if no blocking booking
// overlaps its interval at commit time. The overlap count and the insert
// run inside one MongoDB session so two racing proposals for the same
// interval cannot both land.
func (r *MongoBookingRepo) CreateIfAvailable(ctx context.Context, booking *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"businessId": booking.BusinessID,
			"date":       booking.Date,
			"status":     bson.M{"$in": []models.BookingStatus{models.BookingPending, models.BookingConfirmed}},
			"start":      bson.M{"$lt": booking.End},
			"end":        bson.M{"$gt": booking.Start},
		}
		count, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if count > 0 {
			return ErrSlotTaken
		}
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
