package recipes

import (
	"net/http"

	"github.com/Aidin1998/apiexercises/common/apiutil"
	"github.com/gin-gonic/gin"
)

type recipeURI struct {
	ID uint `uri:"id"`
}

// Handler exposes the recipe store over HTTP
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the recipe endpoints on r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/recipe", h.Create)
	r.GET("/recipe", h.List)
	r.GET("/recipe/:id", h.Get)
	r.PUT("/recipe/:id", h.Update)
	r.DELETE("/recipe/:id", h.Delete)
}

// Create stores a new recipe
// @Summary Create a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body RecipeIn true "Recipe"
// @Success 200 {object} Recipe
// @Failure 422 {object} apiutil.ErrorResponse "Invalid body"
// @Router /recipe [post]
func (h *Handler) Create(c *gin.Context) {
	var req RecipeIn
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	recipe, err := h.store.Create(c.Request.Context(), req)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// List returns every recipe
// @Summary List recipes
// @Tags recipes
// @Produce json
// @Success 200 {array} Recipe
// @Router /recipe [get]
func (h *Handler) List(c *gin.Context) {
	recipes, err := h.store.List(c.Request.Context())
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Get returns one recipe
// @Summary Get a recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe id"
// @Success 200 {object} Recipe
// @Failure 404 {object} apiutil.ErrorResponse "Recipe not found!"
// @Router /recipe/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	var uri recipeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	recipe, err := h.store.Recipe(c.Request.Context(), uri.ID)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Update replaces the fields of a recipe
// @Summary Update a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe id"
// @Param request body RecipeIn true "Recipe"
// @Success 200 {object} Recipe
// @Failure 404 {object} apiutil.ErrorResponse "Recipe not found!"
// @Failure 422 {object} apiutil.ErrorResponse "Invalid body"
// @Router /recipe/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var uri recipeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}
	var req RecipeIn
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	recipe, err := h.store.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Delete removes a recipe
// @Summary Delete a recipe
// @Tags recipes
// @Param id path int true "Recipe id"
// @Success 204
// @Failure 404 {object} apiutil.ErrorResponse "Recipe not found!"
// @Router /recipe/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	var uri recipeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	if err := h.store.Delete(c.Request.Context(), uri.ID); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
