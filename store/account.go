package store

import (
	"time"

	"github.com/jinzhu/gorm"

	"github.com/jurandifr/AcheiPet/schema"
)

// UpsertUser creates the identity record on first sight and refreshes the
// profile fields afterwards. Identity contents come from the external
// authentication collaborator; this store only mirrors them.
func (s *PetStore) UpsertUser(user schema.User) (*schema.User, error) {
	now := time.Now().UTC()

	var existing schema.User
	err := s.ormDB.Where("id = ?", user.ID).First(&existing).Error
	switch {
	case gorm.IsRecordNotFoundError(err):
		user.CreatedAt = now
		user.UpdatedAt = now
		if err := s.ormDB.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	case err != nil:
		return nil, err
	}

	if err := s.ormDB.Model(&existing).Updates(map[string]interface{}{
		"email":             user.Email,
		"first_name":        user.FirstName,
		"last_name":         user.LastName,
		"profile_image_url": user.ProfileImageURL,
		"updated_at":        now,
	}).Error; err != nil {
		return nil, err
	}

	return s.GetUser(user.ID)
}

func (s *PetStore) GetUser(id string) (*schema.User, error) {
	var user schema.User

	if err := s.ormDB.Where("id = ?", id).First(&user).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}
