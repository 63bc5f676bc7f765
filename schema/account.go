package schema

import "time"

// User is the identity record owned by the external authentication
// collaborator. It exists only to scope "my reports" queries and to echo the
// signed-in profile back to the client.
type User struct {
	ID              string    `json:"id" gorm:"primary_key"`
	Email           string    `json:"email" gorm:"unique_index"`
	FirstName       string    `json:"firstName" gorm:"column:first_name"`
	LastName        string    `json:"lastName" gorm:"column:last_name"`
	ProfileImageURL string    `json:"profileImageUrl" gorm:"column:profile_image_url"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
