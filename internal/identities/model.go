package identities

import "time"

// User is an account of the JWT demo
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Name      string    `json:"name" gorm:"not null"`
	Age       int       `json:"age" gorm:"not null"`
	Gender    string    `json:"gender" gorm:"not null"`
	Bio       string    `json:"bio" gorm:"not null;default:''"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterRequest is the body of POST /register/. Every key must be sent,
// empty strings are accepted.
type RegisterRequest struct {
	Username *string `json:"username" binding:"required,max=64"`
	Password *string `json:"password" binding:"required"`
	Name     *string `json:"name" binding:"required"`
	Age      *int    `json:"age" binding:"required"`
	Gender   *string `json:"gender" binding:"required"`
	Bio      *string `json:"bio" binding:"required"`
}

// LoginRequest is the body of POST /login/
type LoginRequest struct {
	Username *string `json:"username" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// TokenRequest is the OAuth2 password form of POST /jwt-login/. Empty form
// values count as missing.
type TokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// ProfileIn is the body of PUT /profile/
type ProfileIn struct {
	Name   *string `json:"name" binding:"required"`
	Age    *int    `json:"age" binding:"required"`
	Gender *string `json:"gender" binding:"required"`
	Bio    *string `json:"bio" binding:"required"`
}

// Profile is the public view of a user
type Profile struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Bio      string `json:"bio"`
	Username string `json:"username"`
}

func (u *User) Profile() Profile {
	return Profile{Name: u.Name, Age: u.Age, Gender: u.Gender, Bio: u.Bio, Username: u.Username}
}
