package instaclone_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/Aidin1998/apiexercises/internal/database"
	"github.com/Aidin1998/apiexercises/internal/instaclone"
	"github.com/Aidin1998/apiexercises/internal/storage"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type brokenStore struct {
	storage.ObjectStore
}

func (brokenStore) Upload(context.Context, string, io.Reader, int64, string) error {
	return fmt.Errorf("connection refused")
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func newService(t *testing.T, objects storage.ObjectStore) *instaclone.Service {
	t.Helper()
	db, err := database.OpenInMemory(instaclone.Models()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return instaclone.NewService(zap.NewNop(), instaclone.NewStore(zap.NewNop(), db), objects, 1<<10)
}

func setupService(t *testing.T) (*instaclone.Service, *storage.MemoryStore) {
	t.Helper()
	objects := storage.NewMemory("photos")
	return newService(t, objects), objects
}

func createUser(t *testing.T, svc *instaclone.Service, username string, age int) *instaclone.User {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), &instaclone.UserIn{
		Email:     username + "@example.com",
		Username:  strPtr(username),
		Password:  strPtr("secret"),
		FirstName: strPtr("First"),
		LastName:  strPtr("Last"),
		Age:       intPtr(age),
		Gender:    instaclone.GenderFemale,
		Bio:       strPtr("<b>hello</b> & welcome"),
	})
	require.NoError(t, err)
	return user
}

func upload(svc *instaclone.Service, userID uuid.UUID, data []byte) (*instaclone.Post, error) {
	return svc.UploadPost(context.Background(), &instaclone.UploadIn{
		UserID:   userID,
		Caption:  strPtr("first <i>post</i>"),
		Filename: "cat.png",
		Size:     int64(len(data)),
		Body:     bytes.NewReader(data),
	})
}

func TestCreateUser(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	teen := createUser(t, svc, "teen", 15)
	assert.NotEqual(t, uuid.Nil, teen.UID)
	assert.True(t, teen.PG16)
	assert.Equal(t, instaclone.RoleUser, teen.Role)
	assert.Equal(t, "hello & welcome", teen.Bio)
	assert.NotEqual(t, "secret", teen.Password)

	adult := createUser(t, svc, "adult", 30)
	stored, err := svc.User(ctx, adult.UID)
	require.NoError(t, err)
	assert.False(t, stored.PG16)
	assert.False(t, stored.Deleted)

	_, err = svc.CreateUser(ctx, &instaclone.UserIn{
		Email: "adult@example.com", Username: strPtr("other"), Password: strPtr("x"),
		FirstName: strPtr("a"), LastName: strPtr("b"), Age: intPtr(20),
		Gender: instaclone.GenderMale, Bio: strPtr(""),
	})
	assert.ErrorIs(t, err, instaclone.ErrUserExists)

	_, err = svc.CreateUser(ctx, &instaclone.UserIn{
		Email: "bad-address", Username: strPtr("bad"), Password: strPtr("x"),
		FirstName: strPtr("a"), LastName: strPtr("b"), Age: intPtr(20),
		Gender: instaclone.GenderMale, Bio: strPtr(""),
	})
	assert.Equal(t, 422, errors.HTTPStatus(err))

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdateUser(t *testing.T) {
	svc, _ := setupService(t)
	user := createUser(t, svc, "alice", 20)

	updated, err := svc.UpdateUser(context.Background(), user.UID, &instaclone.UserUpdate{
		FirstName: strPtr("Alicia"),
		Bio:       strPtr("<script>x</script>new"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "Last", updated.LastName)
	assert.Equal(t, "new", updated.Bio)

	_, err = svc.UpdateUser(context.Background(), uuid.New(), &instaclone.UserUpdate{FirstName: strPtr("x")})
	assert.ErrorIs(t, err, instaclone.ErrUserNotFound)
}

func TestUploadPost(t *testing.T) {
	svc, objects := setupService(t)
	user := createUser(t, svc, "alice", 20)

	post, err := upload(svc, user.UID, pngHeader)
	require.NoError(t, err)
	assert.Equal(t, user.UID, post.UserID)
	require.NotNil(t, post.Caption)
	assert.Equal(t, "first post", *post.Caption)
	assert.True(t, strings.HasPrefix(post.FileURL, "memory://photos/posts/"))
	assert.True(t, strings.HasSuffix(post.FileURL, "_cat.png"))

	require.Equal(t, 1, objects.Len())
	stored, ok := objects.Get(post.ObjectKey)
	require.True(t, ok)
	assert.Equal(t, "image/png", stored.ContentType)
	assert.Equal(t, pngHeader, stored.Data)
}

func TestUploadPostRejects(t *testing.T) {
	svc, objects := setupService(t)
	user := createUser(t, svc, "alice", 20)

	_, err := upload(svc, user.UID, []byte("just some text"))
	assert.ErrorIs(t, err, instaclone.ErrUnsupportedImage)

	_, err = upload(svc, user.UID, bytes.Repeat([]byte{0}, 2<<10))
	assert.ErrorIs(t, err, instaclone.ErrImageTooLarge)

	_, err = upload(svc, uuid.New(), pngHeader)
	assert.ErrorIs(t, err, instaclone.ErrPostOrUser)

	assert.Zero(t, objects.Len())
}

func TestUploadPostStorageFailure(t *testing.T) {
	svc := newService(t, brokenStore{storage.NewMemory("photos")})
	user := createUser(t, svc, "alice", 20)

	_, err := upload(svc, user.UID, pngHeader)
	assert.ErrorIs(t, err, instaclone.ErrUploadFailed)
	assert.Equal(t, 502, errors.HTTPStatus(err))
}

func TestPostLifecycle(t *testing.T) {
	svc, objects := setupService(t)
	ctx := context.Background()
	alice := createUser(t, svc, "alice", 20)
	bob := createUser(t, svc, "bob", 21)

	linked, err := svc.CreatePost(ctx, &instaclone.PostIn{Image: "https://img.example.com/a.jpg", UserID: alice.UID})
	require.NoError(t, err)
	assert.Nil(t, linked.Caption)

	_, err = svc.CreatePost(ctx, &instaclone.PostIn{Image: "x", UserID: uuid.New()})
	assert.ErrorIs(t, err, instaclone.ErrPostOrUser)

	uploaded, err := upload(svc, bob.UID, pngHeader)
	require.NoError(t, err)

	all, err := svc.Posts(ctx, instaclone.PostFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.Posts(ctx, instaclone.PostFilter{UserID: &alice.UID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "https://img.example.com/a.jpg", mine[0].FileURL)

	updated, err := svc.UpdatePost(ctx, linked.UID, &instaclone.PostUpdate{Caption: strPtr("sunset")})
	require.NoError(t, err)
	assert.Equal(t, "sunset", *updated.Caption)

	require.NoError(t, svc.DeletePost(ctx, uploaded.UID))
	assert.Zero(t, objects.Len())
	_, err = svc.Post(ctx, uploaded.UID)
	assert.ErrorIs(t, err, instaclone.ErrPostNotFound)
	assert.ErrorIs(t, svc.DeletePost(ctx, uploaded.UID), instaclone.ErrPostNotFound)
}

func TestComments(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	alice := createUser(t, svc, "alice", 20)
	post, err := svc.CreatePost(ctx, &instaclone.PostIn{Image: "https://img.example.com/a.jpg", UserID: alice.UID})
	require.NoError(t, err)

	comment, err := svc.CreateComment(ctx, &instaclone.CommentIn{Text: "nice <b>shot</b>", PostID: post.UID, UserID: alice.UID})
	require.NoError(t, err)
	assert.Equal(t, "nice shot", comment.Text)

	_, err = svc.CreateComment(ctx, &instaclone.CommentIn{Text: "x", PostID: uuid.New(), UserID: alice.UID})
	assert.ErrorIs(t, err, instaclone.ErrPostOrUser)

	for _, text := range []string{"<b></b>", "  ", "<script>alert(1)</script>"} {
		_, err = svc.CreateComment(ctx, &instaclone.CommentIn{Text: text, PostID: post.UID, UserID: alice.UID})
		assert.Equal(t, 422, errors.HTTPStatus(err), text)
	}

	comments, err := svc.Comments(ctx, post.UID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.UID, comments[0].UID)

	_, err = svc.Comments(ctx, uuid.New())
	assert.ErrorIs(t, err, instaclone.ErrPostNotFound)

	require.NoError(t, svc.DeleteComment(ctx, comment.UID))
	assert.ErrorIs(t, svc.DeleteComment(ctx, comment.UID), instaclone.ErrCommentNotFound)
}

func TestSanitizeEncodedMarkup(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	user, err := svc.CreateUser(ctx, &instaclone.UserIn{
		Email: "eve@example.com", Username: strPtr("eve"), Password: strPtr("x"),
		FirstName: strPtr("a"), LastName: strPtr("b"), Age: intPtr(20), Gender: instaclone.GenderFemale,
		Bio: strPtr("&lt;script&gt;alert(1)&lt;/script&gt;&amp;lt;img src=x onerror=alert(1)&amp;gt;fine"),
	})
	require.NoError(t, err)
	assert.NotContains(t, user.Bio, "<")
	assert.Contains(t, user.Bio, "fine")

	post, err := svc.CreatePost(ctx, &instaclone.PostIn{
		Image: "https://img.example.com/a.jpg", Caption: strPtr("&lt;b&gt;hi&lt;/b&gt; a &lt; b"), UserID: user.UID,
	})
	require.NoError(t, err)
	assert.Equal(t, "hi a < b", *post.Caption)

	comment, err := svc.CreateComment(ctx, &instaclone.CommentIn{Text: "&lt;i&gt;nice&lt;/i&gt;", PostID: post.UID, UserID: user.UID})
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Text)

	_, err = svc.CreateComment(ctx, &instaclone.CommentIn{Text: "&lt;script&gt;x&lt;/script&gt;", PostID: post.UID, UserID: user.UID})
	assert.ErrorIs(t, err, instaclone.ErrEmptyComment)
}

func TestLikes(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	alice := createUser(t, svc, "alice", 20)
	bob := createUser(t, svc, "bob", 21)
	post, err := svc.CreatePost(ctx, &instaclone.PostIn{Image: "https://img.example.com/a.jpg", UserID: alice.UID})
	require.NoError(t, err)
	comment, err := svc.CreateComment(ctx, &instaclone.CommentIn{Text: "hi", PostID: post.UID, UserID: alice.UID})
	require.NoError(t, err)

	require.NoError(t, svc.LikePost(ctx, post.UID, bob.UID))
	assert.ErrorIs(t, svc.LikePost(ctx, post.UID, bob.UID), instaclone.ErrAlreadyLiked)
	assert.ErrorIs(t, svc.LikePost(ctx, post.UID, uuid.New()), instaclone.ErrPostOrUser)

	likers, err := svc.PostLikers(ctx, post.UID)
	require.NoError(t, err)
	require.Len(t, likers, 1)
	assert.Equal(t, bob.UID, likers[0].UID)

	require.NoError(t, svc.UnlikePost(ctx, post.UID, bob.UID))
	assert.ErrorIs(t, svc.UnlikePost(ctx, post.UID, bob.UID), instaclone.ErrLikeNotFound)

	require.NoError(t, svc.LikeComment(ctx, comment.UID, bob.UID))
	assert.ErrorIs(t, svc.LikeComment(ctx, comment.UID, bob.UID), instaclone.ErrAlreadyLiked)
	assert.ErrorIs(t, svc.LikeComment(ctx, uuid.New(), bob.UID), instaclone.ErrCommentOrUser)

	likers, err = svc.CommentLikers(ctx, comment.UID)
	require.NoError(t, err)
	assert.Len(t, likers, 1)

	require.NoError(t, svc.UnlikeComment(ctx, comment.UID, bob.UID))
	likers, err = svc.CommentLikers(ctx, comment.UID)
	require.NoError(t, err)
	assert.Empty(t, likers)
}

func TestDeleteUserCascades(t *testing.T) {
	svc, objects := setupService(t)
	ctx := context.Background()
	alice := createUser(t, svc, "alice", 20)
	bob := createUser(t, svc, "bob", 21)

	post, err := upload(svc, alice.UID, pngHeader)
	require.NoError(t, err)
	_, err = svc.CreateComment(ctx, &instaclone.CommentIn{Text: "hi", PostID: post.UID, UserID: bob.UID})
	require.NoError(t, err)
	require.NoError(t, svc.LikePost(ctx, post.UID, bob.UID))

	require.NoError(t, svc.DeleteUser(ctx, alice.UID))
	assert.Zero(t, objects.Len())

	_, err = svc.Post(ctx, post.UID)
	assert.ErrorIs(t, err, instaclone.ErrPostNotFound)
	posts, err := svc.Posts(ctx, instaclone.PostFilter{})
	require.NoError(t, err)
	assert.Empty(t, posts)

	assert.ErrorIs(t, svc.DeleteUser(ctx, alice.UID), instaclone.ErrUserNotFound)
}

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-00000000002a")
	assert.Equal(t, "posts/42_cat.png", instaclone.ObjectKey(id, "cat.png"))
	assert.Equal(t, "posts/42_cat.png", instaclone.ObjectKey(id, "../../etc/cat.png"))
	assert.Equal(t, "posts/42_cat.png", instaclone.ObjectKey(id, `C:\photos\cat.png`))
	assert.Equal(t, "posts/42_upload", instaclone.ObjectKey(id, ""))
}
