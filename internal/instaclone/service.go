package instaclone

import (
	"context"
	"fmt"
	"html"
	"io"
	"math/big"
	"path/filepath"
	"strings"

	"github.com/Aidin1998/apiexercises/common/dbutil"
	"github.com/Aidin1998/apiexercises/internal/auth"
	"github.com/Aidin1998/apiexercises/internal/storage"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/Aidin1998/apiexercises/pkg/metrics"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

var (
	ErrUserExists       = errors.Invalid.Explain("User already exists!")
	ErrUserNotFound     = errors.NotFound.Explain("User not found!")
	ErrPostNotFound     = errors.NotFound.Explain("Post not found!")
	ErrCommentNotFound  = errors.NotFound.Explain("Comment not found!")
	ErrLikeNotFound     = errors.NotFound.Explain("Like not found!")
	ErrPostOrUser       = errors.Invalid.Explain("Post or user does not exist!")
	ErrCommentOrUser    = errors.Invalid.Explain("Comment or user does not exist!")
	ErrAlreadyLiked     = errors.Invalid.Explain("Already liked!")
	ErrUnsupportedImage = errors.Invalid.Explain("Unsupported image format!")
	ErrImageTooLarge    = errors.TooLarge.Explain("Image is too large!")
	ErrUploadFailed     = errors.BadGateway.Explain("Could not upload image!")
)

// Service holds the photo sharing operations
type Service struct {
	log       *zap.Logger
	store     Store
	objects   storage.ObjectStore
	maxUpload int64
	policy    *bluemonday.Policy
}

// NewService creates the service. maxUpload bounds image uploads in bytes.
func NewService(log *zap.Logger, store Store, objects storage.ObjectStore, maxUpload int64) *Service {
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &Service{
		log:       log,
		store:     store,
		objects:   objects,
		maxUpload: maxUpload,
		policy:    bluemonday.StrictPolicy(),
	}
}

// MaxUpload returns the upload limit in bytes
func (s *Service) MaxUpload() int64 {
	return s.maxUpload
}

const maxSanitizePasses = 5

// sanitize strips markup from user supplied text. Entities are decoded for
// storage, so it repeats until decoding yields nothing new for the policy
// to strip.
func (s *Service) sanitize(text string) string {
	clean := text
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(s.policy.Sanitize(clean))
		if next == clean {
			return strings.TrimSpace(clean)
		}
		clean = next
	}
	return strings.TrimSpace(s.policy.Sanitize(clean))
}

func (s *Service) sanitizePtr(text *string) *string {
	if text == nil {
		return nil
	}
	clean := s.sanitize(*text)
	return &clean
}

// CreateUser registers a new account
func (s *Service) CreateUser(ctx context.Context, in *UserIn) (*User, error) {
	taken, err := s.store.UserTaken(ctx, in.Email, *in.Username)
	if err != nil {
		return nil, errors.New("failed to check user").Wrap(err)
	}
	if taken {
		return nil, ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(*in.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:     in.Email,
		Username:  *in.Username,
		Password:  hashedPassword,
		FirstName: *in.FirstName,
		LastName:  *in.LastName,
		Age:       *in.Age,
		Gender:    in.Gender,
		Bio:       s.sanitize(*in.Bio),
		Role:      RoleUser,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, errors.Conflict) {
			return nil, ErrUserExists.Wrap(err)
		}
		return nil, errors.New("failed to create user").Wrap(err)
	}
	return user, nil
}

func (s *Service) User(ctx context.Context, uid uuid.UUID) (*User, error) {
	user, err := s.store.User(ctx, uid)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.New("failed to get user").Wrap(err)
	}
	return user, nil
}

func (s *Service) Users(ctx context.Context) ([]User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, errors.New("failed to list users").Wrap(err)
	}
	return users, nil
}

// UpdateUser changes the profile fields present in in
func (s *Service) UpdateUser(ctx context.Context, uid uuid.UUID, in *UserUpdate) (*User, error) {
	updates := map[string]interface{}{}
	if in.FirstName != nil {
		updates["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["last_name"] = *in.LastName
	}
	if in.Age != nil {
		updates["age"] = *in.Age
	}
	if in.Gender != nil {
		updates["gender"] = *in.Gender
	}
	if in.Bio != nil {
		updates["bio"] = s.sanitize(*in.Bio)
	}
	if len(updates) == 0 {
		return s.User(ctx, uid)
	}

	if err := s.store.UpdateUser(ctx, uid, updates); err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.New("failed to update user").Wrap(err)
	}
	return s.User(ctx, uid)
}

// DeleteUser removes an account with its posts, comments and likes
func (s *Service) DeleteUser(ctx context.Context, uid uuid.UUID) error {
	keys, err := s.store.ObjectKeys(ctx, uid)
	if err != nil {
		return errors.New("failed to list user objects").Wrap(err)
	}

	if err := s.store.DeleteUser(ctx, uid); err != nil {
		if errors.Is(err, errors.NotFound) {
			return ErrUserNotFound
		}
		return errors.New("failed to delete user").Wrap(err)
	}

	for _, key := range keys {
		s.removeObject(ctx, key)
	}
	return nil
}

// CreatePost stores a post linking an image URL
func (s *Service) CreatePost(ctx context.Context, in *PostIn) (*Post, error) {
	post := &Post{
		FileURL: in.Image,
		Caption: s.sanitizePtr(in.Caption),
		UserID:  in.UserID,
	}
	if err := s.insertPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UploadPost checks the image, uploads it and stores a post pointing at a
// presigned URL of the object.
func (s *Service) UploadPost(ctx context.Context, in *UploadIn) (*Post, error) {
	if in.Size > s.maxUpload {
		return nil, ErrImageTooLarge
	}
	if _, err := s.User(ctx, in.UserID); err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, ErrPostOrUser
		}
		return nil, err
	}

	mtype, err := mimetype.DetectReader(in.Body)
	if err != nil {
		return nil, errors.New("failed to read upload").Wrap(err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, ErrUnsupportedImage.WithField("mimetype", "image", mtype.String())
	}
	if _, err := in.Body.Seek(0, io.SeekStart); err != nil {
		return nil, errors.New("failed to rewind upload").Wrap(err)
	}

	key := ObjectKey(uuid.New(), in.Filename)
	if err := s.objects.Upload(ctx, key, in.Body, in.Size, mtype.String()); err != nil {
		s.log.Error("image upload failed", zap.String("key", key), zap.Error(err))
		return nil, ErrUploadFailed.Wrap(err)
	}
	metrics.UploadedBytes.Add(float64(in.Size))

	url, err := s.objects.PresignGet(ctx, key)
	if err != nil {
		s.log.Error("presign failed", zap.String("key", key), zap.Error(err))
		s.removeObject(ctx, key)
		return nil, ErrUploadFailed.Wrap(err)
	}

	post := &Post{
		FileURL:   url,
		ObjectKey: key,
		Caption:   s.sanitizePtr(in.Caption),
		UserID:    in.UserID,
	}
	if err := s.insertPost(ctx, post); err != nil {
		s.removeObject(ctx, key)
		return nil, err
	}
	return post, nil
}

func (s *Service) insertPost(ctx context.Context, post *Post) error {
	if _, err := s.store.User(ctx, post.UserID); err != nil {
		if errors.Is(err, errors.NotFound) {
			return ErrPostOrUser
		}
		return errors.New("failed to get user").Wrap(err)
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		if dbutil.IsConstraintViolation(err) {
			return ErrPostOrUser.Wrap(err)
		}
		return errors.New("failed to create post").Wrap(err)
	}
	return nil
}

// Post returns a post, refreshing the link of uploaded images
func (s *Service) Post(ctx context.Context, uid uuid.UUID) (*Post, error) {
	post, err := s.store.Post(ctx, uid)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, ErrPostNotFound
		}
		return nil, errors.New("failed to get post").Wrap(err)
	}
	s.refreshURL(ctx, post)
	return post, nil
}

func (s *Service) Posts(ctx context.Context, filter PostFilter) ([]Post, error) {
	posts, err := s.store.Posts(ctx, filter)
	if err != nil {
		return nil, errors.New("failed to list posts").Wrap(err)
	}
	for i := range posts {
		s.refreshURL(ctx, &posts[i])
	}
	return posts, nil
}

func (s *Service) UpdatePost(ctx context.Context, uid uuid.UUID, in *PostUpdate) (*Post, error) {
	err := s.store.UpdatePost(ctx, uid, map[string]interface{}{"caption": s.sanitize(*in.Caption)})
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, ErrPostNotFound
		}
		return nil, errors.New("failed to update post").Wrap(err)
	}
	return s.Post(ctx, uid)
}

// DeletePost removes a post and, best effort, its stored image
func (s *Service) DeletePost(ctx context.Context, uid uuid.UUID) error {
	post, err := s.store.Post(ctx, uid)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return ErrPostNotFound
		}
		return errors.New("failed to get post").Wrap(err)
	}
	if err := s.store.DeletePost(ctx, uid); err != nil {
		if errors.Is(err, errors.NotFound) {
			return ErrPostNotFound
		}
		return errors.New("failed to delete post").Wrap(err)
	}
	if post.ObjectKey != "" {
		s.removeObject(ctx, post.ObjectKey)
	}
	return nil
}

func (s *Service) CreateComment(ctx context.Context, in *CommentIn) (*Comment, error) {
	if err := s.requirePostAndUser(ctx, in.PostID, in.UserID); err != nil {
		return nil, err
	}

	text := s.sanitize(in.Text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	comment := &Comment{Text: text, PostID: in.PostID, UserID: in.UserID}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		if dbutil.IsConstraintViolation(err) {
			return nil, ErrPostOrUser.Wrap(err)
		}
		return nil, errors.New("failed to create comment").Wrap(err)
	}
	return comment, nil
}

func (s *Service) Comments(ctx context.Context, postID uuid.UUID) ([]Comment, error) {
	if _, err := s.Post(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.store.Comments(ctx, postID)
	if err != nil {
		return nil, errors.New("failed to list comments").Wrap(err)
	}
	return comments, nil
}

func (s *Service) DeleteComment(ctx context.Context, uid uuid.UUID) error {
	if err := s.store.DeleteComment(ctx, uid); err != nil {
		if errors.Is(err, errors.NotFound) {
			return ErrCommentNotFound
		}
		return errors.New("failed to delete comment").Wrap(err)
	}
	return nil
}

func (s *Service) LikePost(ctx context.Context, postID, userID uuid.UUID) error {
	if err := s.requirePostAndUser(ctx, postID, userID); err != nil {
		return err
	}
	liked, err := s.store.PostLiked(ctx, userID, postID)
	if err != nil {
		return errors.New("failed to check like").Wrap(err)
	}
	if liked {
		return ErrAlreadyLiked
	}
	if err := s.store.LikePost(ctx, &PostLike{UserID: userID, PostID: postID}); err != nil {
		return likeError(err, ErrPostOrUser)
	}
	return nil
}

func (s *Service) UnlikePost(ctx context.Context, postID, userID uuid.UUID) error {
	if err := s.store.UnlikePost(ctx, userID, postID); err != nil {
		if errors.Is(err, errors.NotFound) {
			return ErrLikeNotFound
		}
		return errors.New("failed to remove like").Wrap(err)
	}
	return nil
}

func (s *Service) PostLikers(ctx context.Context, postID uuid.UUID) ([]User, error) {
	if _, err := s.Post(ctx, postID); err != nil {
		return nil, err
	}
	users, err := s.store.PostLikers(ctx, postID)
	if err != nil {
		return nil, errors.New("failed to list likes").Wrap(err)
	}
	return users, nil
}

func (s *Service) LikeComment(ctx context.Context, commentID, userID uuid.UUID) error {
	if _, err := s.store.Comment(ctx, commentID); err != nil {
		if errors.Is(err, errors.NotFound) {
			return ErrCommentOrUser
		}
		return errors.New("failed to get comment").Wrap(err)
	}
	if _, err := s.store.User(ctx, userID); err != nil {
		if errors.Is(err, errors.NotFound) {
			return ErrCommentOrUser
		}
		return errors.New("failed to get user").Wrap(err)
	}
	liked, err := s.store.CommentLiked(ctx, userID, commentID)
	if err != nil {
		return errors.New("failed to check like").Wrap(err)
	}
	if liked {
		return ErrAlreadyLiked
	}
	if err := s.store.LikeComment(ctx, &CommentLike{UserID: userID, CommentID: commentID}); err != nil {
		return likeError(err, ErrCommentOrUser)
	}
	return nil
}

func (s *Service) UnlikeComment(ctx context.Context, commentID, userID uuid.UUID) error {
	if err := s.store.UnlikeComment(ctx, userID, commentID); err != nil {
		if errors.Is(err, errors.NotFound) {
			return ErrLikeNotFound
		}
		return errors.New("failed to remove like").Wrap(err)
	}
	return nil
}

func (s *Service) CommentLikers(ctx context.Context, commentID uuid.UUID) ([]User, error) {
	if _, err := s.store.Comment(ctx, commentID); err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, errors.New("failed to get comment").Wrap(err)
	}
	users, err := s.store.CommentLikers(ctx, commentID)
	if err != nil {
		return nil, errors.New("failed to list likes").Wrap(err)
	}
	return users, nil
}

func (s *Service) requirePostAndUser(ctx context.Context, postID, userID uuid.UUID) error {
	if _, err := s.store.Post(ctx, postID); err != nil {
		if errors.Is(err, errors.NotFound) {
			return ErrPostOrUser
		}
		return errors.New("failed to get post").Wrap(err)
	}
	if _, err := s.store.User(ctx, userID); err != nil {
		if errors.Is(err, errors.NotFound) {
			return ErrPostOrUser
		}
		return errors.New("failed to get user").Wrap(err)
	}
	return nil
}

func likeError(err error, missing *errors.Error) error {
	switch {
	case errors.Is(err, errors.Conflict):
		return ErrAlreadyLiked.Wrap(err)
	case dbutil.IsConstraintViolation(err):
		return missing.Wrap(err)
	}
	return errors.New("failed to store like").Wrap(err)
}

func (s *Service) refreshURL(ctx context.Context, post *Post) {
	if post.ObjectKey == "" {
		return
	}
	url, err := s.objects.PresignGet(ctx, post.ObjectKey)
	if err != nil {
		s.log.Warn("presign failed, keeping stored url", zap.String("key", post.ObjectKey), zap.Error(err))
		return
	}
	post.FileURL = url
}

func (s *Service) removeObject(ctx context.Context, key string) {
	if err := s.objects.Remove(ctx, key); err != nil {
		s.log.Warn("failed to remove object", zap.String("key", key), zap.Error(err))
	}
}

// ObjectKey names the stored object of an upload: the id as a decimal
// integer joined to the base name of the client file.
func ObjectKey(id uuid.UUID, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return fmt.Sprintf("posts/%s_%s", new(big.Int).SetBytes(id[:]).String(), base)
}
