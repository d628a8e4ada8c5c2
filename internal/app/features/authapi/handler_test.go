package authapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/indexes"
	"github.com/dalemusser/coursepulse/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	tokens, err := auth.NewTokenService("test-secret-test-secret-test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return NewHandler(db, tokens, zap.NewNop())
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HandleRegister,
		`{"full_name":"Rosalind Franklin","email":"rosalind@example.com","password":"photograph51"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID       string `json:"id"`
			FullName string `json:"full_name"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" {
		t.Error("no token in the response")
	}
	if resp.User.Email != "rosalind@example.com" {
		t.Errorf("email = %q", resp.User.Email)
	}

	// The token must verify and carry the new user's id.
	id, err := h.Tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if id.ID.Hex() != resp.User.ID {
		t.Errorf("token subject = %s, want %s", id.ID.Hex(), resp.User.ID)
	}
}

func TestRegister_Validation(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@example.com","password":"longenough"}`},
		{"bad email", `{"full_name":"A","email":"not-an-email","password":"longenough"}`},
		{"short password", `{"full_name":"A","email":"a@example.com","password":"short"}`},
		{"broken json", `{"full_name":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.HandleRegister, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newTestHandler(t)

	body := `{"full_name":"A","email":"dup@example.com","password":"longenough"}`
	if rec := postJSON(t, h.HandleRegister, body); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rec.Code)
	}
	rec := postJSON(t, h.HandleRegister, body)
	if rec.Code != http.StatusConflict {
		t.Errorf("second register status = %d, want 409", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	h := newTestHandler(t)

	register := `{"full_name":"A","email":"login@example.com","password":"correct-horse"}`
	if rec := postJSON(t, h.HandleRegister, register); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}

	t.Run("valid credentials", func(t *testing.T) {
		rec := postJSON(t, h.HandleLogin, `{"email":"login@example.com","password":"correct-horse"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
		}
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if _, err := h.Tokens.Verify(resp.Token); err != nil {
			t.Errorf("issued token does not verify: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, h.HandleLogin, `{"email":"login@example.com","password":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown email answers identically", func(t *testing.T) {
		wrongPass := postJSON(t, h.HandleLogin, `{"email":"login@example.com","password":"wrong"}`)
		noUser := postJSON(t, h.HandleLogin, `{"email":"ghost@example.com","password":"wrong"}`)
		if wrongPass.Code != noUser.Code {
			t.Errorf("status differs: %d vs %d", wrongPass.Code, noUser.Code)
		}
		if wrongPass.Body.String() != noUser.Body.String() {
			t.Error("bodies differ between wrong-password and unknown-email")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := postJSON(t, h.HandleLogin, `{"email":"login@example.com"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
