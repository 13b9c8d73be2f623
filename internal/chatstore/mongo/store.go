// Package mongo implements the chat message store on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/travel-planner/internal/chatstore"
)

const collectionName = "chat_messages"

// Store persists chat messages in a MongoDB collection.
type Store struct {
	client   *mongo.Client
	messages *mongo.Collection
}

// messageDocument is the stored shape of a chat message.
type messageDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ScheduleID string             `bson:"schedule_id"`
	SenderID   string             `bson:"sender_id"`
	Text       string             `bson:"text"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// Open connects to MongoDB and prepares the chat message collection,
// including the schedule/time index that paging and purging rely on.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("chatstore: failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("chatstore: failed to ping mongodb: %w", err)
	}

	messages := client.Database(database).Collection(collectionName)
	_, err = messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "schedule_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("chatstore: failed to create index: %w", err)
	}

	return &Store{client: client, messages: messages}, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Insert stores the message, assigning a fresh ObjectID when the id is empty.
func (s *Store) Insert(ctx context.Context, msg chatstore.Message) (chatstore.Message, error) {
	doc := messageDocument{
		ScheduleID: msg.ScheduleID,
		SenderID:   msg.SenderID,
		Text:       msg.Text,
		CreatedAt:  msg.CreatedAt.UTC(),
	}
	if msg.ID != "" {
		oid, err := primitive.ObjectIDFromHex(msg.ID)
		if err != nil {
			return chatstore.Message{}, fmt.Errorf("chatstore: invalid message id %q: %w", msg.ID, err)
		}
		doc.ID = oid
	} else {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := s.messages.InsertOne(ctx, doc); err != nil {
		return chatstore.Message{}, fmt.Errorf("chatstore: failed to insert message: %w", err)
	}
	msg.ID = doc.ID.Hex()
	return msg, nil
}

// FindPage returns one page of messages ordered oldest first.
func (s *Store) FindPage(ctx context.Context, scheduleID string, page, size int) ([]chatstore.Message, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 30
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(page) * int64(size)).
		SetLimit(int64(size))

	cursor, err := s.messages.Find(ctx, bson.M{"schedule_id": scheduleID}, opts)
	if err != nil {
		return nil, fmt.Errorf("chatstore: failed to query messages: %w", err)
	}
	return decodeMessages(ctx, cursor)
}

// FindAll returns every message for a schedule, oldest first.
func (s *Store) FindAll(ctx context.Context, scheduleID string) ([]chatstore.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.messages.Find(ctx, bson.M{"schedule_id": scheduleID}, opts)
	if err != nil {
		return nil, fmt.Errorf("chatstore: failed to query messages: %w", err)
	}
	return decodeMessages(ctx, cursor)
}

// DeleteBySchedule bulk-removes every message for the schedule.
func (s *Store) DeleteBySchedule(ctx context.Context, scheduleID string) error {
	if _, err := s.messages.DeleteMany(ctx, bson.M{"schedule_id": scheduleID}); err != nil {
		return fmt.Errorf("chatstore: failed to delete messages: %w", err)
	}
	return nil
}

func decodeMessages(ctx context.Context, cursor *mongo.Cursor) ([]chatstore.Message, error) {
	defer cursor.Close(ctx)

	var messages []chatstore.Message
	for cursor.Next(ctx) {
		var doc messageDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("chatstore: failed to decode message: %w", err)
		}
		messages = append(messages, chatstore.Message{
			ID:         doc.ID.Hex(),
			ScheduleID: doc.ScheduleID,
			SenderID:   doc.SenderID,
			Text:       doc.Text,
			CreatedAt:  doc.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("chatstore: cursor error: %w", err)
	}
	return messages, nil
}
