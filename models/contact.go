package models

// Contact is the central entity of the address book. Every satellite table
// (details, interactions, gifts, loans, photos, ...) references a contact
// via a cascade-delete foreign key.
//
// Deletion is two-staged: DeleteContact only flips IsDeleted, keeping all
// satellite rows recoverable; a permanent purge removes the satellites in
// dependency order and then the contact row itself.
type Contact struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	RelationshipLevel string  `json:"relationship_level,omitempty"`
	Gender            string  `json:"gender,omitempty"`
	Birthday          string  `json:"birthday,omitempty"`
	Phone             string  `json:"phone,omitempty"`
	Email             string  `json:"email,omitempty"`
	Company           string  `json:"company,omitempty"`
	Position          string  `json:"position,omitempty"`
	Address           string  `json:"address,omitempty"`
	Tags              string  `json:"tags,omitempty"`
	Notes             string  `json:"notes,omitempty"`
	Avatar            string  `json:"avatar,omitempty"`
	IsFavorite        bool    `json:"is_favorite"`
	GroupID           int64   `json:"group_id,omitempty"`
	Latitude          float64 `json:"latitude,omitempty"`
	Longitude         float64 `json:"longitude,omitempty"`
	ImportanceScore   int64   `json:"importance_score"`
	IsDeleted         bool    `json:"is_deleted"`
	DeletedAt         string  `json:"deleted_at,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Contact model.
func (c Contact) TableName() string {
	return "contacts"
}
