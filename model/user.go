package model

type User struct {
	DTO
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `gorm:"uniqueIndex" json:"email"`
	Phone     string `json:"phone"`
}
