package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// User Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       uint   `json:"id" gorm:"primarykey"`
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role" gorm:"not null;default:user"`

	SavedProperties []Property     `json:"savedProperties,omitempty" gorm:"many2many:user_saved_properties"`
	SavedSearches   datatypes.JSON `json:"savedSearches"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SavedSearch is a snapshot of listing filters a user can re-run later.
type SavedSearch struct {
	ID           string    `json:"id"`
	District     string    `json:"district,omitempty"`
	PropertyType string    `json:"propertyType,omitempty"`
	Category     string    `json:"category,omitempty"`
	MinPrice     string    `json:"minPrice,omitempty"`
	MaxPrice     string    `json:"maxPrice,omitempty"`
	Bedrooms     string    `json:"bedrooms,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) GetSavedSearches() ([]SavedSearch, error) {
	if len(u.SavedSearches) == 0 {
		return []SavedSearch{}, nil
	}
	var searches []SavedSearch
	if err := json.Unmarshal(u.SavedSearches, &searches); err != nil {
		return nil, err
	}
	return searches, nil
}

func (u *User) SetSavedSearches(searches []SavedSearch) error {
	data, err := json.Marshal(searches)
	if err != nil {
		return err
	}
	u.SavedSearches = data
	return nil
}

// GetPublicProfile returns the fields safe to hand to clients alongside a token.
func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}
