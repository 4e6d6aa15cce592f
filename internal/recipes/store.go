package recipes

import (
	"context"

	"github.com/Aidin1998/apiexercises/common/dbutil"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned for unknown recipe ids
var ErrNotFound = errors.NotFound.Explain("Recipe not found!")

type Store interface {
	Create(ctx context.Context, in RecipeIn) (*Recipe, error)
	Recipe(ctx context.Context, id uint) (*Recipe, error)
	List(ctx context.Context) ([]Recipe, error)
	Update(ctx context.Context, id uint, in RecipeIn) (*Recipe, error)
	Delete(ctx context.Context, id uint) error
}

type StoreImp struct {
	log *zap.Logger
	db  *gorm.DB
}

var _ Store = (*StoreImp)(nil)

func NewStore(log *zap.Logger, db *gorm.DB) *StoreImp {
	return &StoreImp{log, db}
}

func (s *StoreImp) Create(ctx context.Context, in RecipeIn) (*Recipe, error) {
	recipe := &Recipe{
		Ingredients:  *in.Ingredients,
		Instructions: *in.Instructions,
		Serving:      *in.Serving,
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, errors.New("failed to create recipe").Wrap(dbutil.WrapError(err))
	}
	return recipe, nil
}

func (s *StoreImp) Recipe(ctx context.Context, id uint) (*Recipe, error) {
	recipe, err := dbutil.FindOne[Recipe](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.New("failed to get recipe").Wrap(err)
	}
	return recipe, nil
}

func (s *StoreImp) List(ctx context.Context) ([]Recipe, error) {
	recipes := []Recipe{}
	if err := s.db.WithContext(ctx).Order("id").Find(&recipes).Error; err != nil {
		return nil, errors.New("failed to list recipes").Wrap(dbutil.WrapError(err))
	}
	return recipes, nil
}

func (s *StoreImp) Update(ctx context.Context, id uint, in RecipeIn) (*Recipe, error) {
	result := s.db.WithContext(ctx).Model(&Recipe{ID: id}).Updates(map[string]interface{}{
		"ingredients":  *in.Ingredients,
		"instructions": *in.Instructions,
		"serving":      *in.Serving,
	})
	if result.Error != nil {
		return nil, errors.New("failed to update recipe").Wrap(dbutil.WrapError(result.Error))
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Recipe(ctx, id)
}

func (s *StoreImp) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&Recipe{}, "id = ?", id)
	if result.Error != nil {
		return errors.New("failed to delete recipe").Wrap(dbutil.WrapError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
