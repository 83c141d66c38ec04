package models

import "time"

type User struct {
	ID        int64     `json:"id" db:"user_id" readOnly:"true"`
	Email     string    `validate:"required,email" json:"email" db:"email"`
	Password  string    `validate:"min=6,max=120" json:"password" db:"password"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" readOnly:"true"`
}

func (User) TableName() string {
	return "users"
}

func (u User) GetID() int64 {
	return u.ID
}

func (u User) EmptySlice() interface{} {
	return &[]User{}
}

// StudentProfile carries the free-text interest field the recommendation
// scorer folds into a user's interest tag set.
type StudentProfile struct {
	UserID   int64  `json:"user_id" db:"user_id"`
	Name     string `json:"name" db:"name"`
	Course   string `json:"course" db:"course"`
	Interest string `json:"interest" db:"interest"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}

func (p StudentProfile) GetID() int64 {
	return p.UserID
}

func (p StudentProfile) EmptySlice() interface{} {
	return &[]StudentProfile{}
}
