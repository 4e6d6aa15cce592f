// Package instaclone implements the photo sharing backend: users, posts
// with uploaded images, comments and likes.
package instaclone

import (
	"time"

	"github.com/Aidin1998/apiexercises/common/apiutil"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender is the enumerated gender of a user
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderTransgender Gender = "transgender"
)

// Role is the enumerated role of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Users older than this are not flagged pg_16
const parentalGuidanceAge = 16

// ErrInvalidEmail is raised by the insert hook for malformed addresses
var ErrInvalidEmail = errors.Unprocessable.Explain("Invalid Email ID entered.")

// ErrEmptyComment is returned when nothing is left of a comment after markup is stripped
var ErrEmptyComment = errors.Unprocessable.Explain("validation error").
	WithField("string_too_short", "text", "comment text has no content")

// User is an account of the photo sharing service
type User struct {
	UID       uuid.UUID `json:"uid" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Age       int       `json:"age" gorm:"not null"`
	Gender    Gender    `json:"gender" gorm:"type:varchar(16);not null;check:chk_users_gender,gender IN ('male','female','transgender')"`
	Bio       string    `json:"bio" gorm:"not null"`
	Deleted   bool      `json:"deleted" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(8);not null;check:chk_users_role,role IN ('admin','user')"`
	PG16      bool      `json:"pg_16" gorm:"column:pg_16;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts    []Post    `json:"-" gorm:"foreignKey:UserID;references:UID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:UserID;references:UID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns the id and defaults and validates the email. pg_16
// stays set only for users aged 16 or less.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UID == uuid.Nil {
		u.UID = uuid.New()
	}
	if !apiutil.IsEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	u.PG16 = u.Age <= parentalGuidanceAge
	return nil
}

// Post is an uploaded or linked image with a caption
type Post struct {
	UID     uuid.UUID `json:"uid" gorm:"type:uuid;primaryKey"`
	FileURL string    `json:"file_url" gorm:"not null"`
	// ObjectKey is empty for posts that only link an external image
	ObjectKey string    `json:"-" gorm:"not null;default:''"`
	Caption   *string   `json:"caption"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Comments []Comment `json:"-" gorm:"foreignKey:PostID;references:UID;constraint:OnDelete:CASCADE"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.UID == uuid.Nil {
		p.UID = uuid.New()
	}
	return nil
}

// Comment is a text reply to a post
type Comment struct {
	UID       uuid.UUID `json:"uid" gorm:"type:uuid;primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	PostID    uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.UID == uuid.Nil {
		c.UID = uuid.New()
	}
	return nil
}

// PostLike records that a user likes a post
type PostLike struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;references:UID;constraint:OnDelete:CASCADE"`
	Post Post `gorm:"foreignKey:PostID;references:UID;constraint:OnDelete:CASCADE"`
}

// CommentLike records that a user likes a comment
type CommentLike struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CommentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time

	User    User    `gorm:"foreignKey:UserID;references:UID;constraint:OnDelete:CASCADE"`
	Comment Comment `gorm:"foreignKey:CommentID;references:UID;constraint:OnDelete:CASCADE"`
}

// Models lists the tables in dependency order for AutoMigrate
func Models() []interface{} {
	return []interface{}{&User{}, &Post{}, &Comment{}, &PostLike{}, &CommentLike{}}
}
