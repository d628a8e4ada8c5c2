package studygroups

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	studygroupstore "github.com/dalemusser/coursepulse/internal/app/store/studygroups"
	"github.com/dalemusser/coursepulse/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func signedRequest(method, target, body string, userID primitive.ObjectID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return testutil.SignedInAs(req, userID, "Test User", "test@example.com")
}

func TestHandleCreateGroup(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "Creator", "creator@example.com")
	member := fx.CreateUser(ctx, "Member", "member@example.com")

	rec := httptest.NewRecorder()
	body := `{"name":"Study Buddies","member_ids":["` + member.ID.Hex() + `"]}`
	h.HandleCreateGroup(rec, signedRequest(http.MethodPost, "/study-groups", body, creator.ID))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var out struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		CreatorID string   `json:"creator_id"`
		MemberIDs []string `json:"member_ids"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "Study Buddies" || out.CreatorID != creator.ID.Hex() {
		t.Errorf("group = %+v", out)
	}
	if len(out.MemberIDs) != 1 || out.MemberIDs[0] != member.ID.Hex() {
		t.Errorf("member ids = %v", out.MemberIDs)
	}
}

func TestHandleCreateGroup_Validation(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	creator := fx.CreateUser(ctx, "Creator", "creator@example.com")

	rec := httptest.NewRecorder()
	h.HandleCreateGroup(rec, signedRequest(http.MethodPost, "/study-groups", `{"name":"  "}`, creator.ID))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank name status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleCreateGroup(rec, signedRequest(http.MethodPost, "/study-groups", `{"name":"X","member_ids":["nothex"]}`, creator.ID))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad member id status = %d, want 400", rec.Code)
	}
}

func TestServeGroupView_OwnerOnly(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner", "owner@example.com")
	other := fx.CreateUser(ctx, "Other", "other@example.com")
	g := fx.CreateStudyGroup(ctx, "Private", owner.ID)

	view := func(userID primitive.ObjectID) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := signedRequest(http.MethodGet, "/study-groups/"+g.ID.Hex(), "", userID)
		req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
		h.ServeGroupView(rec, req)
		return rec
	}

	if rec := view(owner.ID); rec.Code != http.StatusOK {
		t.Errorf("owner view status = %d, want 200", rec.Code)
	}
	if rec := view(other.ID); rec.Code != http.StatusForbidden {
		t.Errorf("non-owner view status = %d, want 403", rec.Code)
	}

	rec := httptest.NewRecorder()
	missing := primitive.NewObjectID()
	req := signedRequest(http.MethodGet, "/study-groups/"+missing.Hex(), "", owner.ID)
	req = testutil.WithChiURLParam(req, "id", missing.Hex())
	h.ServeGroupView(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing group status = %d, want 404", rec.Code)
	}
}

func TestHandleUpdateGroup(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner", "owner@example.com")
	leave := primitive.NewObjectID()
	join := primitive.NewObjectID()
	g := fx.CreateStudyGroup(ctx, "Before", owner.ID, leave)

	rec := httptest.NewRecorder()
	body := `{"name":"After","add_member_ids":["` + join.Hex() + `"],"remove_member_ids":["` + leave.Hex() + `"]}`
	req := signedRequest(http.MethodPatch, "/study-groups/"+g.ID.Hex(), body, owner.ID)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	h.HandleUpdateGroup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var out struct {
		Name      string   `json:"name"`
		MemberIDs []string `json:"member_ids"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "After" {
		t.Errorf("name = %q", out.Name)
	}
	if len(out.MemberIDs) != 1 || out.MemberIDs[0] != join.Hex() {
		t.Errorf("member ids = %v, want only the joined member", out.MemberIDs)
	}
}

func TestHandleAddMember_Conflict(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner", "owner@example.com")
	member := primitive.NewObjectID()
	g := fx.CreateStudyGroup(ctx, "G", owner.ID, member)

	rec := httptest.NewRecorder()
	req := signedRequest(http.MethodPost, "/study-groups/"+g.ID.Hex()+"/members",
		`{"user_id":"`+member.Hex()+`"}`, owner.ID)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	h.HandleAddMember(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate add status = %d, want 409", rec.Code)
	}
}

func TestHandleDeleteGroup(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner", "owner@example.com")
	g := fx.CreateStudyGroup(ctx, "Doomed", owner.ID)

	rec := httptest.NewRecorder()
	req := signedRequest(http.MethodDelete, "/study-groups/"+g.ID.Hex(), "", owner.ID)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	h.HandleDeleteGroup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, err := studygroupstore.New(fx.DB()).GetByID(ctx, g.ID); err == nil {
		t.Error("group still loads after delete")
	}
}

func TestServeGroupList_OnlyMine(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mine := fx.CreateUser(ctx, "Mine", "mine@example.com")
	theirs := fx.CreateUser(ctx, "Theirs", "theirs@example.com")
	fx.CreateStudyGroup(ctx, "G1", mine.ID)
	fx.CreateStudyGroup(ctx, "G2", theirs.ID)

	rec := httptest.NewRecorder()
	h.ServeGroupList(rec, signedRequest(http.MethodGet, "/study-groups", "", mine.ID))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		StudyGroups []struct {
			Name string `json:"name"`
		} `json:"study_groups"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.StudyGroups) != 1 || out.StudyGroups[0].Name != "G1" {
		t.Errorf("groups = %v", out.StudyGroups)
	}
}
