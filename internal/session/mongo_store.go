package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const sessionsCollection = "sessions"

type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoStore creates a MongoDB-backed session store. The server's TTL
// monitor reaps expired documents about once a minute; Get filters on
// expires_at so a not-yet-reaped record is never returned.
func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{
		coll: database.Collection(sessionsCollection),
		now:  time.Now,
	}
}

func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("sessions_expires_at_ttl"),
	})
	if err != nil {
		return fmt.Errorf("session: create ttl index: %w", err)
	}
	return nil
}

func (m *MongoStore) Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error) {
	if err := validateCreate(userID, ttl); err != nil {
		return nil, err
	}

	for range maxIDAttempts {
		id, err := GenerateID()
		if err != nil {
			return nil, err
		}

		now := m.now().UTC().Truncate(time.Millisecond)
		s := Session{
			ID:        id,
			UserID:    userID,
			CreatedAt: now,
			ExpiresAt: now.Add(ttl),
		}

		_, err = m.coll.InsertOne(ctx, s)
		if mongo.IsDuplicateKeyError(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("session: mongo insert: %w", err)
		}

		return &s, nil
	}

	return nil, errIDCollision
}

func (m *MongoStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	err := m.coll.FindOne(ctx, bson.M{
		"_id":        sessionID,
		"expires_at": bson.M{"$gt": m.now().UTC()},
	}).Decode(&s)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: mongo find: %w", err)
	}

	return &s, nil
}
