package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SoftDeleteFields marks an entity as logically deletable. Deleted rows stay
// in the database; every listing and aggregation must filter on IsDeleted.
type SoftDeleteFields struct {
	IsDeleted       bool       `json:"isDeleted"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty"`
	DeletedByUserID *string    `json:"deletedByUserID,omitempty"`
}

// MarkDeleted sets the soft-delete marker.
func (s *SoftDeleteFields) MarkDeleted(userID string, now time.Time) {
	s.IsDeleted = true
	s.DeletedAt = &now
	s.DeletedByUserID = &userID
}
