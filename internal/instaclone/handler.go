package instaclone

import (
	"net/http"

	"github.com/Aidin1998/apiexercises/common/apiutil"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// multipartOverhead leaves room for the form fields around the image
const multipartOverhead = 1 << 20

// Handler exposes the photo sharing service over HTTP
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the endpoints on r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/create", h.CreatePost)

	users := r.Group("/users")
	users.POST("", h.CreateUser)
	users.GET("", h.ListUsers)
	users.GET("/:uid", h.GetUser)
	users.PUT("/:uid", h.UpdateUser)
	users.DELETE("/:uid", h.DeleteUser)

	posts := r.Group("/posts")
	posts.POST("", h.UploadPost)
	posts.GET("", h.ListPosts)
	posts.GET("/:uid", h.GetPost)
	posts.PUT("/:uid", h.UpdatePost)
	posts.DELETE("/:uid", h.DeletePost)
	posts.GET("/:uid/comments", h.ListComments)
	posts.POST("/:uid/likes", h.LikePost)
	posts.GET("/:uid/likes", h.PostLikes)
	posts.DELETE("/:uid/likes/:user_id", h.UnlikePost)

	comments := r.Group("/comments")
	comments.POST("", h.CreateComment)
	comments.DELETE("/:uid", h.DeleteComment)
	comments.POST("/:uid/likes", h.LikeComment)
	comments.GET("/:uid/likes", h.CommentLikes)
	comments.DELETE("/:uid/likes/:user_id", h.UnlikeComment)
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		apiutil.Abort(c, errors.Unprocessable.Explain("validation error").
			WithField("uuid_parsing", name, "input should be a valid UUID").Wrap(err))
		return uuid.Nil, false
	}
	return id, true
}

// CreatePost stores a post linking an existing image URL
// @Summary Create a post from an image URL
// @Tags posts
// @Accept json
// @Produce json
// @Param request body PostIn true "Post"
// @Success 200 {object} Post
// @Failure 400 {object} apiutil.ErrorResponse "Post or user does not exist!"
// @Failure 422 {object} apiutil.ErrorResponse
// @Router /create [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req PostIn
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), &req)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreateUser registers an account
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body UserIn true "User"
// @Success 200 {object} User
// @Failure 400 {object} apiutil.ErrorResponse "User already exists!"
// @Failure 422 {object} apiutil.ErrorResponse
// @Router /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req UserIn
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), &req)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers returns every account
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} User
// @Router /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.Users(c.Request.Context())
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one account
// @Summary Get a user
// @Tags users
// @Produce json
// @Param uid path string true "User id"
// @Success 200 {object} User
// @Failure 404 {object} apiutil.ErrorResponse "User not found!"
// @Router /users/{uid} [get]
func (h *Handler) GetUser(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}

	user, err := h.svc.User(c.Request.Context(), uid)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser changes profile fields of an account
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param uid path string true "User id"
// @Param request body UserUpdate true "Fields to change"
// @Success 200 {object} User
// @Failure 404 {object} apiutil.ErrorResponse "User not found!"
// @Failure 422 {object} apiutil.ErrorResponse
// @Router /users/{uid} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}
	var req UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), uid, &req)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account and everything it owns
// @Summary Delete a user
// @Tags users
// @Param uid path string true "User id"
// @Success 204
// @Failure 404 {object} apiutil.ErrorResponse "User not found!"
// @Router /users/{uid} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), uid); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPost uploads an image and creates a post for it
// @Summary Upload a post
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image"
// @Param caption formData string false "Caption"
// @Param user_id formData string true "Owner id"
// @Success 200 {object} Post
// @Failure 400 {object} apiutil.ErrorResponse "Unsupported image format!"
// @Failure 413 {object} apiutil.ErrorResponse "Image is too large!"
// @Failure 422 {object} apiutil.ErrorResponse
// @Failure 502 {object} apiutil.ErrorResponse "Could not upload image!"
// @Router /posts [post]
func (h *Handler) UploadPost(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.svc.MaxUpload()+multipartOverhead)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			apiutil.Abort(c, ErrImageTooLarge.Wrap(err))
		case errors.Is(err, http.ErrMissingFile):
			apiutil.Abort(c, errors.Unprocessable.Explain("validation error").
				WithField("required", "image", "").Wrap(err))
		default:
			apiutil.Abort(c, apiutil.BindError(err))
		}
		return
	}

	userID, err := uuid.Parse(c.PostForm("user_id"))
	if err != nil {
		apiutil.Abort(c, errors.Unprocessable.Explain("validation error").
			WithField("uuid_parsing", "user_id", "input should be a valid UUID").Wrap(err))
		return
	}

	var caption *string
	if value, ok := c.GetPostForm("caption"); ok {
		caption = &value
	}

	file, err := fileHeader.Open()
	if err != nil {
		apiutil.Abort(c, errors.New("failed to open upload").Wrap(err))
		return
	}
	defer file.Close()

	post, err := h.svc.UploadPost(c.Request.Context(), &UploadIn{
		UserID:   userID,
		Caption:  caption,
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Body:     file,
	})
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListPosts returns posts, optionally of one user
// @Summary List posts
// @Tags posts
// @Produce json
// @Param user_id query string false "Owner id"
// @Success 200 {array} Post
// @Failure 422 {object} apiutil.ErrorResponse
// @Router /posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	var filter PostFilter
	if raw, ok := c.GetQuery("user_id"); ok {
		userID, err := uuid.Parse(raw)
		if err != nil {
			apiutil.Abort(c, errors.Unprocessable.Explain("validation error").
				WithField("uuid_parsing", "user_id", "input should be a valid UUID").Wrap(err))
			return
		}
		filter.UserID = &userID
	}

	posts, err := h.svc.Posts(c.Request.Context(), filter)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost returns one post with a fresh image link
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param uid path string true "Post id"
// @Success 200 {object} Post
// @Failure 404 {object} apiutil.ErrorResponse "Post not found!"
// @Router /posts/{uid} [get]
func (h *Handler) GetPost(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}

	post, err := h.svc.Post(c.Request.Context(), uid)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// UpdatePost changes the caption of a post
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param uid path string true "Post id"
// @Param request body PostUpdate true "Caption"
// @Success 200 {object} Post
// @Failure 404 {object} apiutil.ErrorResponse "Post not found!"
// @Failure 422 {object} apiutil.ErrorResponse
// @Router /posts/{uid} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}
	var req PostUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	post, err := h.svc.UpdatePost(c.Request.Context(), uid, &req)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post
// @Summary Delete a post
// @Tags posts
// @Param uid path string true "Post id"
// @Success 204
// @Failure 404 {object} apiutil.ErrorResponse "Post not found!"
// @Router /posts/{uid} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}

	if err := h.svc.DeletePost(c.Request.Context(), uid); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateComment adds a comment to a post
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param request body CommentIn true "Comment"
// @Success 200 {object} Comment
// @Failure 400 {object} apiutil.ErrorResponse "Post or user does not exist!"
// @Failure 422 {object} apiutil.ErrorResponse
// @Router /comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	var req CommentIn
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	comment, err := h.svc.CreateComment(c.Request.Context(), &req)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ListComments returns the comments of a post
// @Summary List comments of a post
// @Tags comments
// @Produce json
// @Param uid path string true "Post id"
// @Success 200 {array} Comment
// @Failure 404 {object} apiutil.ErrorResponse "Post not found!"
// @Router /posts/{uid}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}

	comments, err := h.svc.Comments(c.Request.Context(), uid)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// DeleteComment removes a comment
// @Summary Delete a comment
// @Tags comments
// @Param uid path string true "Comment id"
// @Success 204
// @Failure 404 {object} apiutil.ErrorResponse "Comment not found!"
// @Router /comments/{uid} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}

	if err := h.svc.DeleteComment(c.Request.Context(), uid); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LikePost records a like on a post
// @Summary Like a post
// @Tags likes
// @Accept json
// @Param uid path string true "Post id"
// @Param request body LikeIn true "Liker"
// @Success 204
// @Failure 400 {object} apiutil.ErrorResponse "Already liked!"
// @Router /posts/{uid}/likes [post]
func (h *Handler) LikePost(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}
	var req LikeIn
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	if err := h.svc.LikePost(c.Request.Context(), uid, req.UserID); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnlikePost removes a like from a post
// @Summary Unlike a post
// @Tags likes
// @Param uid path string true "Post id"
// @Param user_id path string true "Liker id"
// @Success 204
// @Failure 404 {object} apiutil.ErrorResponse "Like not found!"
// @Router /posts/{uid}/likes/{user_id} [delete]
func (h *Handler) UnlikePost(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.svc.UnlikePost(c.Request.Context(), uid, userID); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PostLikes lists the users that like a post
// @Summary List likes of a post
// @Tags likes
// @Produce json
// @Param uid path string true "Post id"
// @Success 200 {array} User
// @Failure 404 {object} apiutil.ErrorResponse "Post not found!"
// @Router /posts/{uid}/likes [get]
func (h *Handler) PostLikes(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}

	users, err := h.svc.PostLikers(c.Request.Context(), uid)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// LikeComment records a like on a comment
// @Summary Like a comment
// @Tags likes
// @Accept json
// @Param uid path string true "Comment id"
// @Param request body LikeIn true "Liker"
// @Success 204
// @Failure 400 {object} apiutil.ErrorResponse "Already liked!"
// @Router /comments/{uid}/likes [post]
func (h *Handler) LikeComment(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}
	var req LikeIn
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}

	if err := h.svc.LikeComment(c.Request.Context(), uid, req.UserID); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnlikeComment removes a like from a comment
// @Summary Unlike a comment
// @Tags likes
// @Param uid path string true "Comment id"
// @Param user_id path string true "Liker id"
// @Success 204
// @Failure 404 {object} apiutil.ErrorResponse "Like not found!"
// @Router /comments/{uid}/likes/{user_id} [delete]
func (h *Handler) UnlikeComment(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.svc.UnlikeComment(c.Request.Context(), uid, userID); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CommentLikes lists the users that like a comment
// @Summary List likes of a comment
// @Tags likes
// @Produce json
// @Param uid path string true "Comment id"
// @Success 200 {array} User
// @Failure 404 {object} apiutil.ErrorResponse "Comment not found!"
// @Router /comments/{uid}/likes [get]
func (h *Handler) CommentLikes(c *gin.Context) {
	uid, ok := pathUUID(c, "uid")
	if !ok {
		return
	}

	users, err := h.svc.CommentLikers(c.Request.Context(), uid)
	if err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
