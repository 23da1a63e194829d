package models

import "time"

// User is a storefront profile keyed by the identity provider's uid.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(128)" json:"id"`
	Name      string    `gorm:"type:varchar(200)" json:"name"`
	Email     string    `gorm:"type:varchar(200);index" json:"email"`
	Phone     string    `gorm:"type:varchar(40)" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

type Admin struct {
	UID       string    `gorm:"primaryKey;type:varchar(128)" json:"uid"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Admin) TableName() string {
	return "admins"
}
