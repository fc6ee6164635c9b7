package chatRepo

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

// MongoChatRepo implements ChatRepository using MongoDB.
type MongoChatRepo struct {
	convColl *mongo.Collection
	msgColl  *mongo.Collection
}

func NewMongoChatRepo() ChatRepository {
	db := database.MongoClient.Database("imara")
	repo := &MongoChatRepo{
		convColl: db.Collection("conversations"),
		msgColl:  db.Collection("messages"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create chat indexes: %v\n", err)
	}
	return repo
}

func (r *MongoChatRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	convIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "lastMessageTime", Value: -1}}},
		{Keys: bson.D{{Key: "professionalId", Value: 1}, {Key: "lastMessageTime", Value: -1}}},
	}
	if _, err := r.convColl.Indexes().CreateMany(ctx, convIndexes); err != nil {
		return fmt.Errorf("failed to create conversation indexes: %w", err)
	}

	msgIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	if _, err := r.msgColl.Indexes().CreateMany(ctx, msgIndexes); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}

func (r *MongoChatRepo) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.convColl.InsertOne(ctx, conv); err != nil {
		return fmt.Errorf("error creating conversation: %w", err)
	}
	return nil
}

func (r *MongoChatRepo) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var conv models.Conversation
	if err := r.convColl.FindOne(ctx, bson.M{"id": conversationID}).Decode(&conv); err != nil {
		return nil, fmt.Errorf("error fetching conversation %s: %w", conversationID, err)
	}
	return &conv, nil
}

func (r *MongoChatRepo) GetConversationByBooking(ctx context.Context, bookingID string) (*models.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var conv models.Conversation
	err := r.convColl.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&conv)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching conversation for booking %s: %w", bookingID, err)
	}
	return &conv, nil
}

func (r *MongoChatRepo) GetConversationsFor(ctx context.Context, userID string) ([]models.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"isArchived": false,
		"$or": []bson.M{
			{"clientId": userID},
			{"professionalId": userID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "lastMessageTime", Value: -1}})
	cursor, err := r.convColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations for %s: %w", userID, err)
	}
	var convs []models.Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, fmt.Errorf("error decoding conversations: %w", err)
	}
	return convs, nil
}

func (r *MongoChatRepo) InsertMessage(ctx context.Context, msg *models.Message) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.msgColl.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("error inserting message: %w", err)
	}
	return nil
}

func (r *MongoChatRepo) GetMessages(ctx context.Context, conversationID string, limit int64) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.msgColl.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching messages for %s: %w", conversationID, err)
	}
	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("error decoding messages: %w", err)
	}
	return msgs, nil
}

func (r *MongoChatRepo) TouchConversation(ctx context.Context, conversationID, lastMessage string, incrementClient bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	incrementField := "unreadCountPro"
	if incrementClient {
		incrementField = "unreadCountClient"
	}
	update := bson.M{
		"$set": bson.M{
			"lastMessage":     lastMessage,
			"lastMessageTime": time.Now(),
		},
		"$inc": bson.M{incrementField: 1},
	}
	res, err := r.convColl.UpdateOne(ctx, bson.M{"id": conversationID}, update)
	if err != nil {
		return fmt.Errorf("error updating conversation %s: %w", conversationID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("conversation %s not found", conversationID)
	}
	return nil
}

func (r *MongoChatRepo) ResetUnread(ctx context.Context, conversationID string, clientSide bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	field := "unreadCountPro"
	if clientSide {
		field = "unreadCountClient"
	}
	_, err := r.convColl.UpdateOne(ctx, bson.M{"id": conversationID}, bson.M{"$set": bson.M{field: 0}})
	if err != nil {
		return fmt.Errorf("error resetting unread counter for %s: %w", conversationID, err)
	}
	return nil
}

func (r *MongoChatRepo) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"conversationId": conversationID,
		"isRead":         false,
		"senderId":       bson.M{"$ne": readerID},
	}
	update := bson.M{"$set": bson.M{"isRead": true, "readAt": time.Now()}}
	if _, err := r.msgColl.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("error marking messages read for %s: %w", conversationID, err)
	}
	return nil
}

func (r *MongoChatRepo) SetArchived(ctx context.Context, conversationID string, archived bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.convColl.UpdateOne(ctx, bson.M{"id": conversationID}, bson.M{"$set": bson.M{"isArchived": archived}})
	if err != nil {
		return fmt.Errorf("error archiving conversation %s: %w", conversationID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("conversation %s not found", conversationID)
	}
	return nil
}
