package service

import (
	"gorm.io/gorm"

	"royalestates_backend/internal/model"
)

const featuredLimit = 6

// PropertyService answers listing queries and mutations over the property
// store. Authorization and input validation happen at the HTTP boundary,
// never here.
type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// creatorProjection limits the joined creator to its public minimum.
func creatorProjection(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

// List returns the properties matching every supplied filter, newest first.
// Ordering between records created at the same instant is unspecified.
func (s *PropertyService) List(filters PropertyFilters) ([]model.Property, error) {
	var properties []model.Property
	err := filters.Apply(s.db.Model(&model.Property{})).
		Order("created_at desc").
		Preload("CreatedBy", creatorProjection).
		Find(&properties).Error
	return properties, err
}

// Featured returns up to six featured listings, newest first.
func (s *PropertyService) Featured() ([]model.Property, error) {
	var properties []model.Property
	err := s.db.Where("featured = ?", true).
		Order("created_at desc").
		Limit(featuredLimit).
		Preload("CreatedBy", creatorProjection).
		Find(&properties).Error
	return properties, err
}

func (s *PropertyService) Get(id uint) (*model.Property, error) {
	var property model.Property
	if err := s.db.Preload("CreatedBy", creatorProjection).First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *PropertyService) Create(property *model.Property) error {
	return s.db.Create(property).Error
}

// Update applies a partial update. The updates map holds column names keyed
// exactly as the schema spells them; the controller builds it from an
// already-validated patch.
func (s *PropertyService) Update(id uint, updates map[string]interface{}) (*model.Property, error) {
	var property model.Property
	if err := s.db.First(&property, id).Error; err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(&property).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Preload("CreatedBy", creatorProjection).First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *PropertyService) Delete(id uint) error {
	result := s.db.Delete(&model.Property{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SaveForUser adds the property to the user's saved set. Saving an
// already-saved property leaves exactly one membership.
func (s *PropertyService) SaveForUser(userID, propertyID uint) error {
	var property model.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		return err
	}

	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}

	var count int64
	s.db.Table("user_saved_properties").
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count)
	if count > 0 {
		return nil
	}

	return s.db.Model(&user).Association("SavedProperties").Append(&property)
}

// UnsaveForUser removes the property from the user's saved set; removing
// an absent membership is a no-op.
func (s *PropertyService) UnsaveForUser(userID, propertyID uint) error {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}

	return s.db.Model(&user).Association("SavedProperties").Delete(&model.Property{ID: propertyID})
}

// SavedProperties lists the user's saved set with creators projected.
func (s *PropertyService) SavedProperties(userID uint) ([]model.Property, error) {
	var properties []model.Property
	err := s.db.
		Joins("JOIN user_saved_properties usp ON usp.property_id = properties.id").
		Where("usp.user_id = ?", userID).
		Preload("CreatedBy", creatorProjection).
		Find(&properties).Error
	return properties, err
}
