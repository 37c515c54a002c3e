package user

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"` // UUID venant de auth.users
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
}
