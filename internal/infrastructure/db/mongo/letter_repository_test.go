package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

func TestMongoLetter_TimestampsKeepSubSecondOrder(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	older := mongoLetter{UpdatedAt: base.UnixMilli()}
	newer := mongoLetter{UpdatedAt: base.Add(time.Millisecond).UnixMilli()}

	if !newer.toDomain().UpdatedAt.After(older.toDomain().UpdatedAt) {
		t.Fatal("letters updated within the same second must not tie")
	}
	if got := older.toDomain().UpdatedAt; !got.Equal(base) {
		t.Fatalf("timestamp round trip lost precision: %v", got)
	}
}

func TestMongoLetter_ZeroTimestamp(t *testing.T) {
	var ml mongoLetter
	if !ml.toDomain().UpdatedAt.IsZero() {
		t.Fatal("unset timestamp must map to the zero time")
	}
}

func TestOwnerFilter_MalformedIDs(t *testing.T) {
	valid := primitive.NewObjectID().Hex()

	if _, err := ownerFilter(valid, "not-hex"); !errors.Is(err, domain.ErrLetterNotFound) {
		t.Fatalf("malformed letter id must read as not found, got %v", err)
	}
	if _, err := ownerFilter("not-hex", valid); !errors.Is(err, domain.ErrLetterNotFound) {
		t.Fatalf("malformed owner id must read as not found, got %v", err)
	}
	if _, err := ownerFilter(valid, valid); err != nil {
		t.Fatalf("well-formed ids must build a filter: %v", err)
	}
}
