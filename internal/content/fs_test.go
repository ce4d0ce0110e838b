package content

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/abhisek/quizladder/internal/quiz"
)

func TestEmbeddedStore_ShippedBundlesAreValid(t *testing.T) {
	s := NewEmbeddedStore()
	ctx := context.Background()

	var shipped int
	for _, e := range s.Catalog().Entries() {
		if !s.Available(e.ID) {
			continue
		}
		shipped++
		b, err := s.Get(ctx, e.ID)
		if err != nil {
			t.Errorf("Get(%q): %v", e.ID, err)
			continue
		}
		if err := quiz.ValidateBundle(b); err != nil {
			t.Errorf("bundle %q: %v", e.ID, err)
		}
	}
	if shipped == 0 {
		t.Fatal("expected at least one shipped bundle")
	}
}

func TestFSStore_Get(t *testing.T) {
	fsys := fstest.MapFS{
		"languages/java.json": {Data: []byte(`{"topic":"Java","sets":[{"setId":"j1","title":"Basics",
			"questions":[{"id":1,"text":"?","options":["a","b"],"correct":0}]}]}`)},
		"web/html.json": {Data: []byte(`{"topic":"HTML"}`)},
	}
	s := NewFSStore(fsys, nil)
	ctx := context.Background()

	b, err := s.Get(ctx, "JAVA")
	if err != nil {
		t.Fatalf("Get(JAVA): %v", err)
	}
	if b.Topic != "Java" {
		t.Errorf("Topic = %q, want Java", b.Topic)
	}

	if _, err := s.Get(ctx, "python"); !errors.Is(err, quiz.ErrNotFound) {
		t.Errorf("catalogued but missing: err = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(ctx, "cobol"); !errors.Is(err, quiz.ErrNotFound) {
		t.Errorf("not catalogued: err = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(ctx, "html"); !errors.Is(err, quiz.ErrInvalidBundle) {
		t.Errorf("invalid content: err = %v, want ErrInvalidBundle", err)
	}
}

func TestFSStore_CanceledContext(t *testing.T) {
	s := NewEmbeddedStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Get(ctx, "java"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewDirStore_Missing(t *testing.T) {
	if _, err := NewDirStore(t.TempDir()+"/nope", nil); err == nil {
		t.Error("expected error for missing directory")
	}
}
