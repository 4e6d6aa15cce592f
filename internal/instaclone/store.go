package instaclone

import (
	"context"

	"github.com/Aidin1998/apiexercises/common/dbutil"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store interface {
	CreateUser(ctx context.Context, user *User) error
	User(ctx context.Context, uid uuid.UUID) (*User, error)
	Users(ctx context.Context) ([]User, error)
	UserTaken(ctx context.Context, email, username string) (bool, error)
	UpdateUser(ctx context.Context, uid uuid.UUID, updates map[string]interface{}) error
	DeleteUser(ctx context.Context, uid uuid.UUID) error

	CreatePost(ctx context.Context, post *Post) error
	Post(ctx context.Context, uid uuid.UUID) (*Post, error)
	Posts(ctx context.Context, filter PostFilter) ([]Post, error)
	ObjectKeys(ctx context.Context, userID uuid.UUID) ([]string, error)
	UpdatePost(ctx context.Context, uid uuid.UUID, updates map[string]interface{}) error
	DeletePost(ctx context.Context, uid uuid.UUID) error

	CreateComment(ctx context.Context, comment *Comment) error
	Comment(ctx context.Context, uid uuid.UUID) (*Comment, error)
	Comments(ctx context.Context, postID uuid.UUID) ([]Comment, error)
	DeleteComment(ctx context.Context, uid uuid.UUID) error

	LikePost(ctx context.Context, like *PostLike) error
	PostLiked(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	UnlikePost(ctx context.Context, userID, postID uuid.UUID) error
	PostLikers(ctx context.Context, postID uuid.UUID) ([]User, error)
	LikeComment(ctx context.Context, like *CommentLike) error
	CommentLiked(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
	UnlikeComment(ctx context.Context, userID, commentID uuid.UUID) error
	CommentLikers(ctx context.Context, commentID uuid.UUID) ([]User, error)
}

type StoreImp struct {
	log *zap.Logger
	db  *gorm.DB
}

var _ Store = (*StoreImp)(nil)

func NewStore(log *zap.Logger, db *gorm.DB) *StoreImp {
	return &StoreImp{log, db}
}

func (s *StoreImp) CreateUser(ctx context.Context, user *User) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return dbutil.WrapError(err)
	}
	return nil
}

func (s *StoreImp) User(ctx context.Context, uid uuid.UUID) (*User, error) {
	return dbutil.FindOne[User](s.db.WithContext(ctx).Where("uid = ?", uid))
}

func (s *StoreImp) Users(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, dbutil.WrapError(err)
	}
	return users, nil
}

func (s *StoreImp) UserTaken(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		return false, dbutil.WrapError(err)
	}
	return count > 0, nil
}

func (s *StoreImp) UpdateUser(ctx context.Context, uid uuid.UUID, updates map[string]interface{}) error {
	return s.update(ctx, &User{}, uid, updates)
}

func (s *StoreImp) DeleteUser(ctx context.Context, uid uuid.UUID) error {
	return s.delete(ctx, &User{}, uid)
}

func (s *StoreImp) CreatePost(ctx context.Context, post *Post) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return dbutil.WrapError(err)
	}
	return nil
}

func (s *StoreImp) Post(ctx context.Context, uid uuid.UUID) (*Post, error) {
	return dbutil.FindOne[Post](s.db.WithContext(ctx).Where("uid = ?", uid))
}

func (s *StoreImp) Posts(ctx context.Context, filter PostFilter) ([]Post, error) {
	query := s.db.WithContext(ctx)
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	posts := []Post{}
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, dbutil.WrapError(err)
	}
	return posts, nil
}

func (s *StoreImp) ObjectKeys(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).Model(&Post{}).
		Where("user_id = ? AND object_key <> ''", userID).
		Pluck("object_key", &keys).Error
	if err != nil {
		return nil, dbutil.WrapError(err)
	}
	return keys, nil
}

func (s *StoreImp) UpdatePost(ctx context.Context, uid uuid.UUID, updates map[string]interface{}) error {
	return s.update(ctx, &Post{}, uid, updates)
}

func (s *StoreImp) DeletePost(ctx context.Context, uid uuid.UUID) error {
	return s.delete(ctx, &Post{}, uid)
}

func (s *StoreImp) CreateComment(ctx context.Context, comment *Comment) error {
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return dbutil.WrapError(err)
	}
	return nil
}

func (s *StoreImp) Comment(ctx context.Context, uid uuid.UUID) (*Comment, error) {
	return dbutil.FindOne[Comment](s.db.WithContext(ctx).Where("uid = ?", uid))
}

func (s *StoreImp) Comments(ctx context.Context, postID uuid.UUID) ([]Comment, error) {
	comments := []Comment{}
	err := s.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at").Find(&comments).Error
	if err != nil {
		return nil, dbutil.WrapError(err)
	}
	return comments, nil
}

func (s *StoreImp) DeleteComment(ctx context.Context, uid uuid.UUID) error {
	return s.delete(ctx, &Comment{}, uid)
}

func (s *StoreImp) LikePost(ctx context.Context, like *PostLike) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error; err != nil {
		return dbutil.WrapError(err)
	}
	return nil
}

func (s *StoreImp) PostLiked(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	return s.exists(ctx, &PostLike{}, "user_id = ? AND post_id = ?", userID, postID)
}

func (s *StoreImp) UnlikePost(ctx context.Context, userID, postID uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&PostLike{}, "user_id = ? AND post_id = ?", userID, postID)
	if result.Error != nil {
		return dbutil.WrapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound
	}
	return nil
}

func (s *StoreImp) PostLikers(ctx context.Context, postID uuid.UUID) ([]User, error) {
	users := []User{}
	err := s.db.WithContext(ctx).
		Joins("JOIN post_likes ON post_likes.user_id = users.uid").
		Where("post_likes.post_id = ?", postID).
		Order("post_likes.created_at").
		Find(&users).Error
	if err != nil {
		return nil, dbutil.WrapError(err)
	}
	return users, nil
}

func (s *StoreImp) LikeComment(ctx context.Context, like *CommentLike) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error; err != nil {
		return dbutil.WrapError(err)
	}
	return nil
}

func (s *StoreImp) CommentLiked(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	return s.exists(ctx, &CommentLike{}, "user_id = ? AND comment_id = ?", userID, commentID)
}

func (s *StoreImp) UnlikeComment(ctx context.Context, userID, commentID uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&CommentLike{}, "user_id = ? AND comment_id = ?", userID, commentID)
	if result.Error != nil {
		return dbutil.WrapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound
	}
	return nil
}

func (s *StoreImp) CommentLikers(ctx context.Context, commentID uuid.UUID) ([]User, error) {
	users := []User{}
	err := s.db.WithContext(ctx).
		Joins("JOIN comment_likes ON comment_likes.user_id = users.uid").
		Where("comment_likes.comment_id = ?", commentID).
		Order("comment_likes.created_at").
		Find(&users).Error
	if err != nil {
		return nil, dbutil.WrapError(err)
	}
	return users, nil
}

func (s *StoreImp) exists(ctx context.Context, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, dbutil.WrapError(err)
	}
	return count > 0, nil
}

func (s *StoreImp) update(ctx context.Context, model interface{}, uid uuid.UUID, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(model).Where("uid = ?", uid).Updates(updates)
	if result.Error != nil {
		return dbutil.WrapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound
	}
	return nil
}

func (s *StoreImp) delete(ctx context.Context, model interface{}, uid uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(model, "uid = ?", uid)
	if result.Error != nil {
		return dbutil.WrapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound
	}
	return nil
}
