package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/nao1215/antenna/internal/model"
)

// openTestMongo connects to the server named by ANTENNA_MONGO_URI using a
// throwaway collection. The test is skipped when the variable is unset.
func openTestMongo(t *testing.T) *MongoStore {
	t.Helper()

	uri := os.Getenv("ANTENNA_MONGO_URI")
	if uri == "" {
		t.Skip("ANTENNA_MONGO_URI is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := OpenMongo(ctx, MongoOptions{
		URI:        uri,
		Collection: fmt.Sprintf("test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("failed to open mongo: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.coll.Drop(ctx); err != nil {
			t.Logf("failed to drop collection: %v", err)
		}
		if err := s.Close(); err != nil {
			t.Logf("failed to close mongo: %v", err)
		}
	})
	return s
}

// TestMongoStore tests lookup and insert-if-absent against a live server.
func TestMongoStore(t *testing.T) {
	s := openTestMongo(t)
	ctx := context.Background()
	record := model.UpdateRecord{Title: "12:00", Body: "Hello"}

	found, err := s.Lookup(ctx, record.Body)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if found {
		t.Error("expected missing body to be not found")
	}

	if err := s.Insert(ctx, record); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	found, err = s.Lookup(ctx, record.Body)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !found {
		t.Error("expected inserted body to be found")
	}

	// Same body again hits the _id key and is absorbed.
	if err := s.Insert(ctx, model.UpdateRecord{Title: "12:05", Body: "Hello"}); err != nil {
		t.Errorf("duplicate Insert should not fail: %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 transmission, got %d", n)
	}

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].Body != "Hello" || list[0].Title != "12:00" {
		t.Errorf("unexpected list %+v", list)
	}

	found, err = s.Lookup(ctx, "hello")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if found {
		t.Error("lookup should be exact-match")
	}
}

