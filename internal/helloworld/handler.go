// Package helloworld serves the greeting endpoints
package helloworld

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Aidin1998/apiexercises/common/apiutil"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/gin-gonic/gin"
)

const successStatus = "success"

// Greeting is the root payload
type Greeting struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Repeated lists the greeting the requested number of times
type Repeated struct {
	Message []string `json:"message"`
	Length  int      `json:"length"`
	Status  string   `json:"status"`
}

// Comments lists numbered placeholder comments of a blog
type Comments struct {
	ID       int      `json:"id"`
	Comments []string `json:"comments"`
	Total    int      `json:"total comments"`
	Status   string   `json:"status"`
}

type timesURI struct {
	Times int `uri:"times"`
}

type blogsQuery struct {
	Limit int `form:"limit,default=10"`
}

type commentsURI struct {
	ID int `uri:"id"`
}

type commentsQuery struct {
	Limit  int    `form:"limit,default=5"`
	Format string `form:"format,default=true"`
}

// Handler holds the greeting endpoints
type Handler struct {
	maxRepeat int
}

// NewHandler creates the handler. Counts above maxRepeat are rejected.
func NewHandler(maxRepeat int) *Handler {
	if maxRepeat <= 0 {
		maxRepeat = 1000
	}
	return &Handler{maxRepeat: maxRepeat}
}

// RegisterRoutes mounts the endpoints on r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.HelloWorld)
	r.GET("/print-hello/:times", h.PrintHello)
	r.GET("/get-blogs", h.GetBlogs)
	r.GET("/details/:id/comments", h.BlogComments)
}

// HelloWorld greets the caller
// @Summary Greet
// @Tags helloworld
// @Produce json
// @Success 200 {object} Greeting
// @Router / [get]
func (h *Handler) HelloWorld(c *gin.Context) {
	c.JSON(http.StatusOK, Greeting{Message: "Hello World, From Gin!", Status: successStatus})
}

// PrintHello repeats the greeting
// @Summary Repeat the greeting
// @Tags helloworld
// @Produce json
// @Param times path int true "Repetitions"
// @Success 200 {object} Repeated
// @Failure 422 {object} apiutil.ErrorResponse
// @Router /print-hello/{times} [get]
func (h *Handler) PrintHello(c *gin.Context) {
	var uri timesURI
	if err := c.ShouldBindUri(&uri); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}
	if err := h.checkCount("times", uri.Times); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, Repeated{Message: repeat(uri.Times), Length: uri.Times, Status: successStatus})
}

// GetBlogs repeats the greeting limit times
// @Summary List blogs
// @Tags helloworld
// @Produce json
// @Param limit query int false "Number of blogs" default(10)
// @Success 200 {object} Repeated
// @Failure 422 {object} apiutil.ErrorResponse
// @Router /get-blogs [get]
func (h *Handler) GetBlogs(c *gin.Context) {
	var query blogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}
	if err := h.checkCount("limit", query.Limit); err != nil {
		apiutil.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, Repeated{Message: repeat(query.Limit), Length: query.Limit, Status: successStatus})
}

// BlogComments lists placeholder comments of a blog
// @Summary List blog comments
// @Tags helloworld
// @Produce json
// @Param id path int true "Blog id"
// @Param limit query int false "Number of comments" default(5)
// @Param format query bool false "Append the FORMATTED marker" default(true)
// @Success 200 {object} Comments
// @Failure 422 {object} apiutil.ErrorResponse
// @Router /details/{id}/comments [get]
func (h *Handler) BlogComments(c *gin.Context) {
	var uri commentsURI
	if err := c.ShouldBindUri(&uri); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}
	var query commentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apiutil.Abort(c, apiutil.BindError(err))
		return
	}
	if err := h.checkCount("limit", query.Limit); err != nil {
		apiutil.Abort(c, err)
		return
	}
	format, ok := parseBool(query.Format)
	if !ok {
		apiutil.Abort(c, errors.Unprocessable.Explain("validation error").
			WithField("bool_parsing", "format", "value could not be parsed to a boolean"))
		return
	}

	comments := make([]string, 0, max(query.Limit, 0)+1)
	for i := 0; i < query.Limit; i++ {
		comments = append(comments, fmt.Sprintf("Comment - %d", i))
	}
	if format {
		comments = append(comments, "FORMATTED")
	}

	c.JSON(http.StatusOK, Comments{ID: uri.ID, Comments: comments, Total: query.Limit, Status: successStatus})
}

func (h *Handler) checkCount(field string, n int) error {
	if n > h.maxRepeat {
		return errors.Unprocessable.Explain("validation error").
			WithField("max", field, "must be at most "+strconv.Itoa(h.maxRepeat))
	}
	return nil
}

// repeat returns n greetings; negative n yields none
func repeat(n int) []string {
	msg := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		msg = append(msg, "Hello")
	}
	return msg
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, true
	case "0", "f", "false", "n", "no", "off":
		return false, true
	}
	return false, false
}
