package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RequestStatus is the lifecycle state of a RoleRequest.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// RoleRequest is a user's ask to be elevated to chef or admin.
// At most one pending request per user_email is allowed; the store backs this
// with a partial unique index created during migration.
type RoleRequest struct {
	ID            string            `json:"_id" gorm:"primaryKey"`
	UserName      string            `json:"userName,omitempty"`
	UserEmail     string            `json:"userEmail" gorm:"index" binding:"omitempty,email"`
	Email         string            `json:"email,omitempty"`
	RequestType   string            `json:"requestType" gorm:"not null" binding:"required,requesttype"`
	RequestStatus RequestStatus     `json:"requestStatus" gorm:"not null;default:'pending';index"`
	DecidedBy     string            `json:"decidedBy,omitempty"`
	DecidedAt     *time.Time        `json:"decidedAt,omitempty"`
	Extras        datatypes.JSONMap `json:"-"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func (r *RoleRequest) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}

type roleRequestDoc RoleRequest

func (r *RoleRequest) UnmarshalJSON(data []byte) error {
	var doc roleRequestDoc
	extras, err := decodeDocument(data, &doc)
	if err != nil {
		return err
	}
	*r = RoleRequest(doc)
	r.Extras = extras
	return nil
}

func (r RoleRequest) MarshalJSON() ([]byte, error) {
	return encodeDocument(roleRequestDoc(r), r.Extras)
}

// TargetEmail is the account the request is about. Older clients sent "email" instead of "userEmail".
func (r *RoleRequest) TargetEmail() string {
	if r.UserEmail != "" {
		return r.UserEmail
	}
	return r.Email
}

// RequestedRole returns the requested role, case-normalized.
func (r *RoleRequest) RequestedRole() UserRole {
	return UserRole(strings.ToLower(strings.TrimSpace(r.RequestType)))
}
