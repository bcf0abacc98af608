// Package audit carries who did what. The Actor is passed explicitly through
// service calls; nothing here reads ambient or request-scoped state.
package audit

import (
	"time"

	"github.com/BearBump/RouteBox/internal/models"
)

const (
	UserTypeUser   = "USER"
	UserTypeSystem = "SYSTEM"
	UserTypeDevice = "DEVICE"
)

type Actor struct {
	UserID    string
	UserName  string
	UserType  string
	RequestID string
	IP        string
	At        time.Time
}

// System is the actor used by background jobs and broker consumers.
func System(requestID string) Actor {
	return Actor{
		UserID:    "system",
		UserName:  "system",
		UserType:  UserTypeSystem,
		RequestID: requestID,
		At:        time.Now().UTC(),
	}
}

// Stamp fills the actor fields of a history entry.
func (a Actor) Stamp(h *models.RouteHistory) {
	h.UserID = optional(a.UserID)
	h.UserName = optional(a.UserName)
	h.UserType = optional(a.UserType)
	h.RequestID = optional(a.RequestID)
	h.IPAddress = optional(a.IP)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
