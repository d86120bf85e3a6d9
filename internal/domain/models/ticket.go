// internal/domain/models/ticket.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ticket is a member support ticket as listed by GET /reports/tickets.
type Ticket struct {
	ID         primitive.ObjectID  `bson:"_id" json:"id"`
	Subject    string              `bson:"subject" json:"subject"`
	Category   string              `bson:"category,omitempty" json:"category,omitempty"`
	Priority   string              `bson:"priority,omitempty" json:"priority,omitempty"`
	Status     string              `bson:"status" json:"status"`
	MemberID   *primitive.ObjectID `bson:"memberId,omitempty" json:"memberId,omitempty"`
	MemberName string              `bson:"memberName,omitempty" json:"memberName,omitempty"`
	Company    string              `bson:"company,omitempty" json:"company,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  *time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	ResolvedAt *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`

	// Done is set when listing: resolved or closed.
	Done bool `bson:"-" json:"done"`
}
