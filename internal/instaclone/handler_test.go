package instaclone_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Aidin1998/apiexercises/common/apiutil"
	"github.com/Aidin1998/apiexercises/internal/instaclone"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apiutil.RegisterValidators()

	svc, _ := setupService(t)
	r := gin.New()
	r.Use(apiutil.ErrorMiddleware(zap.NewNop()))
	instaclone.NewHandler(svc).RegisterRoutes(r)
	return r
}

func send(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sendUpload(r *gin.Engine, fields map[string]string, filename string, data []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, value := range fields {
		_ = mw.WriteField(name, value)
	}
	if filename != "" {
		part, _ := mw.CreateFormFile("image", filename)
		_, _ = part.Write(data)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/posts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apiutil.ErrorResponse
	decodeInto(t, w, &resp)
	return resp.Detail
}

func postUser(t *testing.T, r *gin.Engine, username string, age int) instaclone.User {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{
		"email": username + "@example.com", "username": username, "password": "secret",
		"first_name": "First", "last_name": "Last", "age": age, "gender": "male", "bio": "",
	})
	w := send(r, http.MethodPost, "/users", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user instaclone.User
	decodeInto(t, w, &user)
	return user
}

func TestUserEndpoints(t *testing.T) {
	r := setupRouter(t)
	user := postUser(t, r, "alice", 12)
	assert.True(t, user.PG16)
	assert.NotContains(t, send(r, http.MethodGet, "/users/"+user.UID.String(), "").Body.String(), "password")

	w := send(r, http.MethodPost, "/users", `{"email":"alice@example.com","username":"x","password":"p","first_name":"a","last_name":"b","age":3,"gender":"male","bio":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists!", detail(t, w))

	w = send(r, http.MethodPost, "/users", `{"email":"nope","username":"x","password":"p","first_name":"a","last_name":"b","age":3,"gender":"robot","bio":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp apiutil.ErrorResponse
	decodeInto(t, w, &resp)
	fields := map[string]string{}
	for _, f := range resp.Fields {
		fields[f.Field] = f.Kind
	}
	assert.Equal(t, map[string]string{"email": "user_email", "gender": "oneof"}, fields)

	w = send(r, http.MethodPut, "/users/"+user.UID.String(), `{"last_name":"Smith"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated instaclone.User
	decodeInto(t, w, &updated)
	assert.Equal(t, "Smith", updated.LastName)
	assert.Equal(t, "First", updated.FirstName)

	w = send(r, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	var users []instaclone.User
	decodeInto(t, w, &users)
	assert.Len(t, users, 1)

	w = send(r, http.MethodGet, "/users/not-a-uuid", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	assert.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, "/users/"+user.UID.String(), "").Code)
	w = send(r, http.MethodGet, "/users/"+user.UID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found!", detail(t, w))
}

func TestCreateUserKeys(t *testing.T) {
	r := setupRouter(t)

	w := send(r, http.MethodPost, "/users", `{"email":"bob@example.com","username":"bob","password":"p","age":30,"gender":"male"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp apiutil.ErrorResponse
	decodeInto(t, w, &resp)
	var missing []string
	for _, f := range resp.Fields {
		missing = append(missing, f.Field)
	}
	assert.ElementsMatch(t, []string{"first_name", "last_name", "bio"}, missing)

	w = send(r, http.MethodPost, "/users", `{"email":"bob@example.com","username":"","password":"","first_name":"","last_name":"","age":30,"gender":"male","bio":""}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user instaclone.User
	decodeInto(t, w, &user)
	assert.Empty(t, user.FirstName)
	assert.Empty(t, user.Bio)
}

func TestUploadEndpoint(t *testing.T) {
	r := setupRouter(t)
	user := postUser(t, r, "alice", 20)
	owner := map[string]string{"user_id": user.UID.String(), "caption": "hello"}

	w := sendUpload(r, owner, "cat.png", pngHeader)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var post instaclone.Post
	decodeInto(t, w, &post)
	assert.Equal(t, "hello", *post.Caption)
	assert.Contains(t, post.FileURL, "_cat.png")

	w = sendUpload(r, owner, "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unsupported image format!", detail(t, w))

	w = sendUpload(r, owner, "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = sendUpload(r, map[string]string{"user_id": "bogus"}, "cat.png", pngHeader)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = sendUpload(r, map[string]string{"user_id": uuid.NewString()}, "cat.png", pngHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Post or user does not exist!", detail(t, w))

	w = sendUpload(r, owner, "big.png", append(pngHeader, bytes.Repeat([]byte{0}, 2<<10)...))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = send(r, http.MethodGet, "/posts?user_id="+user.UID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var posts []instaclone.Post
	decodeInto(t, w, &posts)
	assert.Len(t, posts, 1)

	assert.Equal(t, http.StatusUnprocessableEntity, send(r, http.MethodGet, "/posts?user_id=x", "").Code)
}

func TestPostCommentLikeEndpoints(t *testing.T) {
	r := setupRouter(t)
	alice := postUser(t, r, "alice", 20)
	bob := postUser(t, r, "bob", 20)

	w := send(r, http.MethodPost, "/create", `{"image":"https://img.example.com/a.jpg","caption":"sun","user_id":"`+alice.UID.String()+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var post instaclone.Post
	decodeInto(t, w, &post)
	postPath := "/posts/" + post.UID.String()

	w = send(r, http.MethodPut, postPath, `{"caption":"moon"}`)
	require.Equal(t, http.StatusOK, w.Code)
	decodeInto(t, w, &post)
	assert.Equal(t, "moon", *post.Caption)
	assert.Equal(t, http.StatusUnprocessableEntity, send(r, http.MethodPut, postPath, `{}`).Code)

	w = send(r, http.MethodPost, "/comments", `{"text":"wow","post_id":"`+post.UID.String()+`","user_id":"`+bob.UID.String()+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var comment instaclone.Comment
	decodeInto(t, w, &comment)

	w = send(r, http.MethodPost, "/comments", `{"text":"<b></b>","post_id":"`+post.UID.String()+`","user_id":"`+bob.UID.String()+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"text"`)

	w = send(r, http.MethodGet, postPath+"/comments", "")
	require.Equal(t, http.StatusOK, w.Code)
	var comments []instaclone.Comment
	decodeInto(t, w, &comments)
	assert.Len(t, comments, 1)

	like := `{"user_id":"` + bob.UID.String() + `"}`
	assert.Equal(t, http.StatusNoContent, send(r, http.MethodPost, postPath+"/likes", like).Code)
	w = send(r, http.MethodPost, postPath+"/likes", like)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Already liked!", detail(t, w))

	w = send(r, http.MethodGet, postPath+"/likes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var likers []instaclone.User
	decodeInto(t, w, &likers)
	require.Len(t, likers, 1)
	assert.Equal(t, bob.UID, likers[0].UID)

	assert.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, postPath+"/likes/"+bob.UID.String(), "").Code)
	w = send(r, http.MethodDelete, postPath+"/likes/"+bob.UID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Like not found!", detail(t, w))

	commentPath := "/comments/" + comment.UID.String()
	assert.Equal(t, http.StatusNoContent, send(r, http.MethodPost, commentPath+"/likes", like).Code)
	w = send(r, http.MethodGet, commentPath+"/likes", "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeInto(t, w, &likers)
	assert.Len(t, likers, 1)
	assert.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, commentPath+"/likes/"+bob.UID.String(), "").Code)

	assert.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, commentPath, "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodDelete, commentPath, "").Code)

	assert.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, postPath, "").Code)
	w = send(r, http.MethodGet, postPath, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found!", detail(t, w))
}
