package businessRepo

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

// MongoBusinessRepo implements BusinessRepository using MongoDB.
type MongoBusinessRepo struct {
	coll *mongo.Collection
}

func NewMongoBusinessRepo() BusinessRepository {
	coll := database.MongoClient.Database("imara").Collection("businesses")
	repo := &MongoBusinessRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create business indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBusinessRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "address.city", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoBusinessRepo) GetByID(ctx context.Context, businessID string) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var business models.Business
	if err := r.coll.FindOne(ctx, bson.M{"id": businessID}).Decode(&business); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching business %s: %w", businessID, err)
	}
	return &business, nil
}

func (r *MongoBusinessRepo) ListActive(ctx context.Context, tag, city string) ([]models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"isActive": true}
	if tag != "" {
		filter["tags"] = tag
	}
	if city != "" {
		filter["address.city"] = city
	}
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing businesses: %w", err)
	}
	var businesses []models.Business
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, fmt.Errorf("error decoding businesses: %w", err)
	}
	return businesses, nil
}

func (r *MongoBusinessRepo) AddGalleryImage(ctx context.Context, businessID string, image models.GalleryImage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"gallery": image},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": businessID}, update)
	if err != nil {
		return fmt.Errorf("error adding gallery image to %s: %w", businessID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("business %s not found", businessID)
	}
	return nil
}

func (r *MongoBusinessRepo) IncrementBookingCount(ctx context.Context, businessID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": businessID}, bson.M{"$inc": bson.M{"bookingCount": 1}})
	if err != nil {
		return fmt.Errorf("error incrementing booking count for %s: %w", businessID, err)
	}
	return nil
}
