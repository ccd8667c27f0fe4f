package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	GoogleID     string             `bson:"google_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Picture      string             `bson:"picture,omitempty"`
	AccessToken  string             `bson:"access_token,omitempty"`
	RefreshToken string             `bson:"refresh_token,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		GoogleID:     mu.GoogleID,
		Name:         mu.Name,
		Email:        mu.Email,
		Picture:      mu.Picture,
		AccessToken:  mu.AccessToken,
		RefreshToken: mu.RefreshToken,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// Upsert resolves a Google profile to a local user record. The google_id
// unique index makes the upsert the single deduplication point: a returning
// user gets fresh tokens, a first-time user gets a full record. UpsertedCount
// carries the signup-vs-login signal explicitly.
func (r *UserRepository) Upsert(ctx context.Context, profile domain.GoogleProfile, tokens domain.OAuthTokens) (*domain.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC().Unix()
	filter := bson.M{"google_id": profile.GoogleID}
	update := bson.M{
		"$set": bson.M{
			"access_token":  tokens.AccessToken,
			"refresh_token": tokens.RefreshToken,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"google_id":  profile.GoogleID,
			"name":       profile.Name,
			"email":      profile.Email,
			"picture":    profile.Picture,
			"created_at": now,
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		return nil, false, fmt.Errorf("fetch upserted user: %w", err)
	}
	return mu.toDomain(), res.UpsertedCount > 0, nil
}

// EnsureIndexes creates the unique google_id index on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "google_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
