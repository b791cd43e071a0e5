package models

import "time"

// ConnectionStatus represents the status of a connection request.
type ConnectionStatus string

const (
	// ConnectionStatusPending is the only stored status; accepted and
	// declined requests are removed.
	ConnectionStatusPending ConnectionStatus = "pending"
)

// ConnectionRequest is a pending request from one user to another.
type ConnectionRequest struct {
	ID         string           `json:"id" yaml:"id"`
	FromUserID string           `json:"fromUserId" yaml:"fromUserId"`
	ToUserID   string           `json:"toUserId" yaml:"toUserId"`
	Status     ConnectionStatus `json:"status" yaml:"status"`
	CreatedAt  time.Time        `json:"createdAt" yaml:"createdAt"`
}

// Involves reports whether the request is between a and b, in either direction.
func (r *ConnectionRequest) Involves(a, b string) bool {
	return (r.FromUserID == a && r.ToUserID == b) || (r.FromUserID == b && r.ToUserID == a)
}
