package testutil

import (
	"net/http"

	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SignedInAs returns the request with identity injected the way the bearer
// middleware would, so handlers under test see a signed-in caller.
func SignedInAs(r *http.Request, id primitive.ObjectID, name, email string) *http.Request {
	return auth.WithIdentity(r, &auth.Identity{ID: id, Name: name, Email: email})
}
