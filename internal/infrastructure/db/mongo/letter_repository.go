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
	"github.com/devUbaid/LetterDrive-Backend/internal/core/ports"
)

const lettersCollection = "letters"

type LetterRepository struct {
	coll *mongo.Collection
}

func NewLetterRepository(db *mongo.Database) *LetterRepository {
	return &LetterRepository{coll: db.Collection(lettersCollection)}
}

type mongoLetter struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       primitive.ObjectID `bson:"user_id"`
	Title        string             `bson:"title"`
	Content      string             `bson:"content"`
	SavedToDrive bool               `bson:"saved_to_drive"`
	DriveFileID  string             `bson:"drive_file_id,omitempty"`
	// Unix milliseconds: the listing sorts on updated_at, and letters saved
	// within the same second must not tie.
	CreatedAt int64 `bson:"created_at"`
	UpdatedAt int64 `bson:"updated_at"`
}

func (ml *mongoLetter) toDomain() *domain.Letter {
	return &domain.Letter{
		ID:           ml.ID.Hex(),
		UserID:       ml.UserID.Hex(),
		Title:        ml.Title,
		Content:      ml.Content,
		SavedToDrive: ml.SavedToDrive,
		DriveFileID:  ml.DriveFileID,
		CreatedAt:    unixMilliToTime(ml.CreatedAt),
		UpdatedAt:    unixMilliToTime(ml.UpdatedAt),
	}
}

func unixMilliToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ts).UTC()
}

// ownerFilter builds the owner-scoped filter for a single letter. Malformed
// ids map to ErrLetterNotFound so the API never distinguishes "bad id" from
// "not yours".
func ownerFilter(ownerID, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLetterNotFound
	}
	uid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrLetterNotFound
	}
	return bson.M{"_id": oid, "user_id": uid}, nil
}

func (r *LetterRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Letter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	uid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []domain.Letter{}, nil
	}

	// _id breaks any remaining updated_at tie so the listing order is stable.
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": uid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list letters: %w", err)
	}
	defer cursor.Close(ctx)

	letters := []domain.Letter{}
	for cursor.Next(ctx) {
		var ml mongoLetter
		if err := cursor.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode letter: %w", err)
		}
		letters = append(letters, *ml.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate letters: %w", err)
	}
	return letters, nil
}

func (r *LetterRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Letter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	var ml mongoLetter
	if err := r.coll.FindOne(ctx, filter).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLetterNotFound
		}
		return nil, fmt.Errorf("find letter: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *LetterRepository) Insert(ctx context.Context, letter *domain.Letter) (*domain.Letter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	uid, err := primitive.ObjectIDFromHex(letter.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert letter: invalid owner id %q", letter.UserID)
	}

	ml := mongoLetter{
		UserID:       uid,
		Title:        letter.Title,
		Content:      letter.Content,
		SavedToDrive: letter.SavedToDrive,
		DriveFileID:  letter.DriveFileID,
		CreatedAt:    letter.CreatedAt.UnixMilli(),
		UpdatedAt:    letter.UpdatedAt.UnixMilli(),
	}

	res, err := r.coll.InsertOne(ctx, ml)
	if err != nil {
		return nil, fmt.Errorf("insert letter: %w", err)
	}

	ml.ID = res.InsertedID.(primitive.ObjectID)
	return ml.toDomain(), nil
}

func (r *LetterRepository) Update(ctx context.Context, ownerID, id string, update ports.LetterUpdate) (*domain.Letter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC().UnixMilli()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ml mongoLetter
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLetterNotFound
		}
		return nil, fmt.Errorf("update letter: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *LetterRepository) Delete(ctx context.Context, ownerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(ownerID, id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete letter: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLetterNotFound
	}
	return nil
}

func (r *LetterRepository) MarkSynced(ctx context.Context, ownerID, id, driveFileID string) (*domain.Letter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"saved_to_drive": true,
		"drive_file_id":  driveFileID,
		"updated_at":     time.Now().UTC().UnixMilli(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ml mongoLetter
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLetterNotFound
		}
		return nil, fmt.Errorf("mark synced: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *LetterRepository) ClearSyncMetadata(ctx context.Context, ownerID, driveFileID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	uid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil
	}

	update := bson.M{
		"$set":   bson.M{"saved_to_drive": false},
		"$unset": bson.M{"drive_file_id": ""},
	}
	// No letter referencing the remote id is fine: the caller already
	// deleted the remote file and only asks for advisory cleanup.
	_, err = r.coll.UpdateOne(ctx, bson.M{"user_id": uid, "drive_file_id": driveFileID}, update)
	if err != nil {
		return fmt.Errorf("clear sync metadata: %w", err)
	}
	return nil
}

// EnsureIndexes creates the letters collection indexes: the owner listing
// sort and the drive file id lookup used by ClearSyncMetadata.
func (r *LetterRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}}},
		{Keys: bson.D{{Key: "drive_file_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
