package userRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

func NewMongoUserRepo() UserRepository {
	coll := database.MongoClient.Database("imara").Collection("users")
	repo := &MongoUserRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create user indexes: %v\n", err)
	}
	return repo
}

func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": userID}).Decode(&user); err != nil {
		return nil, fmt.Errorf("error fetching user %s: %w", userID, err)
	}
	return &user, nil
}

func (r *MongoUserRepo) Upsert(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": user.ID}, user, opts); err != nil {
		return fmt.Errorf("error upserting user %s: %w", user.ID, err)
	}
	return nil
}

func (r *MongoUserRepo) UpdateFCMToken(ctx context.Context, userID, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"fcmToken": token, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": userID}, update)
	if err != nil {
		return fmt.Errorf("error updating FCM token for %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", userID)
	}
	return nil
}
