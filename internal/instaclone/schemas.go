package instaclone

import (
	"io"

	"github.com/google/uuid"
)

// UserIn is the body of POST /users. Every key must be sent; text fields
// other than email and gender may be empty.
type UserIn struct {
	Email     string  `json:"email" binding:"required,user_email"`
	Username  *string `json:"username" binding:"required,max=64"`
	Password  *string `json:"password" binding:"required"`
	FirstName *string `json:"first_name" binding:"required"`
	LastName  *string `json:"last_name" binding:"required"`
	Age       *int    `json:"age" binding:"required,min=0"`
	Gender    Gender  `json:"gender" binding:"required,oneof=male female transgender"`
	Bio       *string `json:"bio" binding:"required"`
}

// UserUpdate is the body of PUT /users/:uid. Omitted fields are kept.
type UserUpdate struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1"`
	Age       *int    `json:"age" binding:"omitempty,min=0"`
	Gender    *Gender `json:"gender" binding:"omitempty,oneof=male female transgender"`
	Bio       *string `json:"bio"`
}

// PostIn is the body of POST /create, a post linking an existing image
type PostIn struct {
	Image   string    `json:"image" binding:"required"`
	Caption *string   `json:"caption"`
	UserID  uuid.UUID `json:"user_id" binding:"required"`
}

// UploadIn describes a multipart image upload
type UploadIn struct {
	UserID   uuid.UUID
	Caption  *string
	Filename string
	Size     int64
	Body     io.ReadSeeker
}

// PostUpdate is the body of PUT /posts/:uid
type PostUpdate struct {
	Caption *string `json:"caption" binding:"required"`
}

// CommentIn is the body of POST /comments
type CommentIn struct {
	Text   string    `json:"text" binding:"required"`
	PostID uuid.UUID `json:"post_id" binding:"required"`
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// LikeIn is the body of the like endpoints
type LikeIn struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// PostFilter narrows GET /posts
type PostFilter struct {
	UserID *uuid.UUID
}
