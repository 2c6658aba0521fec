package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const usersCollection = "users"

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{coll: database.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index that makes Create atomic
// with respect to duplicate registrations.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("credentials: create email index: %w", err)
	}
	return nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("credentials: find by email: %w", err)
	}
	return &u, nil
}

func (s *MongoStore) Create(ctx context.Context, email, passwordHash string) (*User, error) {
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		// mongo stores milliseconds; truncate so the returned value matches reads
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("credentials: insert user: %w", err)
	}

	return &u, nil
}
