package session

import (
	"time"

	"github.com/mednexus/hms/internal/domain/registry"
)

// Session is the server-side state for one signed-in client: who they
// are and which hospital their views are scoped to. The client holds
// only the opaque token referencing it.
type Session struct {
	ID         string        `json:"id"`
	User       registry.User `json:"user"`
	HospitalID string        `json:"hospital_id"`
	CreatedAt  time.Time     `json:"created_at"`
}
