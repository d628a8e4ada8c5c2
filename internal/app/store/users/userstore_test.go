package userstore

import (
	"errors"
	"testing"

	"github.com/dalemusser/coursepulse/internal/app/system/indexes"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"github.com/dalemusser/coursepulse/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	u, err := store.Create(ctx, models.User{
		FullName:     "  Grace Hopper  ",
		Email:        "Grace@Example.COM",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.FullName != "Grace Hopper" {
		t.Errorf("full name = %q, want surrounding whitespace trimmed", u.FullName)
	}
	if u.Email != "grace@example.com" {
		t.Errorf("email = %q, want lowercased", u.Email)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != u.Email {
		t.Errorf("loaded email = %q", got.Email)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	store := New(db)
	if _, err := store.Create(ctx, models.User{FullName: "A", Email: "dup@example.com", PasswordHash: "h"}); err != nil {
		t.Fatal(err)
	}
	_, err := store.Create(ctx, models.User{FullName: "B", Email: "DUP@example.com", PasswordHash: "h"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestGetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	u, err := store.Create(ctx, models.User{FullName: "Alan Turing", Email: "alan@example.com", PasswordHash: "h"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.GetByEmail(ctx, "ALAN@Example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("got user %s, want %s", got.ID.Hex(), u.ID.Hex())
	}

	if _, err := store.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing email err = %v, want ErrNotFound", err)
	}
}

func TestGetByIDs_MissingAreAbsent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	a := fx.CreateUser(ctx, "A", "a@example.com")
	b := fx.CreateUser(ctx, "B", "b@example.com")
	missing := primitive.NewObjectID()

	got, err := New(db).GetByIDs(ctx, []primitive.ObjectID{a.ID, missing, b.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("resolved %d users, want 2", len(got))
	}
	if _, ok := got[missing]; ok {
		t.Error("a missing id resolved to a user")
	}
}

func TestSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateUser(ctx, "Marie Curie", "marie@example.com")
	fx.CreateUser(ctx, "Pierre Curie", "pierre@example.com")
	fx.CreateUser(ctx, "Niels Bohr", "niels@example.com")

	store := New(db)

	got, err := store.Search(ctx, "curie", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("search 'curie' returned %d users, want 2", len(got))
	}

	got, err = store.Search(ctx, "niels@", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("search by email returned %d users, want 1", len(got))
	}

	got, err = store.Search(ctx, "   ", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("blank query returned %d users, want 0", len(got))
	}
}

func TestSearch_TreatsQueryAsLiteral(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateUser(ctx, "Marie Curie", "marie@example.com")
	fx.CreateUser(ctx, "Niels Bohr", "niels@example.com")

	store := New(db)

	// Unbalanced metacharacters must not produce a server-side regex error.
	got, err := store.Search(ctx, "(", 10)
	if err != nil {
		t.Fatalf("Search '(': %v", err)
	}
	if len(got) != 0 {
		t.Errorf("search '(' returned %d users, want 0", len(got))
	}

	got, err = store.Search(ctx, ".*", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("search '.*' matched %d users, want 0", len(got))
	}

	got, err = store.Search(ctx, "mar.e", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("search 'mar.e' matched %d users, want 0 (dot is literal)", len(got))
	}
}
