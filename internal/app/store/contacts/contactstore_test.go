package contactstore

import (
	"testing"
	"time"

	"github.com/bnomad/website/internal/domain/models"
	"github.com/bnomad/website/internal/testutil"
)

func TestCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.ContactSubmission{
		Name:    "  Ada Lovelace  ",
		Email:   " Ada@Example.COM ",
		Subject: "Hello",
		Message: "I would like to visit.",
		Lang:    "en",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.Name != "Ada Lovelace" {
		t.Errorf("Name = %q, want trimmed", created.Name)
	}
	if created.Email != "ada@example.com" {
		t.Errorf("Email = %q, want normalized", created.Email)
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestListAll_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx := testutil.TestContext(t)

	for _, name := range []string{"first", "second"} {
		if _, err := store.Create(ctx, models.ContactSubmission{
			Name:    name,
			Email:   name + "@example.com",
			Message: "hi",
			Lang:    "ko",
		}); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	subs, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("ListAll() returned %d, want 2", len(subs))
	}
	if subs[0].Name != "second" {
		t.Errorf("first result = %q, want newest submission", subs[0].Name)
	}
	if subs[0].Lang != "ko" {
		t.Errorf("Lang = %q, want ko", subs[0].Lang)
	}
}

func TestListAll_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx := testutil.TestContext(t)

	subs, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("ListAll() returned %d, want 0", len(subs))
	}
}
