package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainKeepsKind(t *testing.T) {
	err := errors.NotFound.Explain("Recipe not found!")

	assert.True(t, errors.Is(err, errors.NotFound))
	assert.False(t, errors.Is(err, errors.Invalid))
	assert.Equal(t, "Recipe not found!", err.Message)
	assert.Equal(t, "", errors.NotFound.Message, "Explain must not mutate the shared kind")
	assert.Equal(t, http.StatusNotFound, errors.HTTPStatus(err))
}

func TestWrapKeepsStatusAndCause(t *testing.T) {
	cause := stderrors.New("duplicate key value violates unique constraint")
	err := errors.Conflict.Explain("duplication of key").Wrap(cause)

	assert.Equal(t, http.StatusConflict, errors.HTTPStatus(err))
	assert.True(t, errors.Is(err, errors.Conflict))
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "duplication of key")
	assert.Contains(t, err.Error(), "duplicate key value")
}

func TestHTTPStatusOfPlainErrors(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, errors.HTTPStatus(stderrors.New("boom")))
	assert.Equal(t, http.StatusTeapot, errors.HTTPStatus(errors.StatusCode(http.StatusTeapot)))
}

func TestWithFieldCopies(t *testing.T) {
	base := errors.Unprocessable.Explain("validation error")
	withAge := base.WithField("required", "age", "")
	withBoth := withAge.WithField("email", "email", "")

	assert.Empty(t, base.Fields)
	assert.Len(t, withAge.Fields, 1)
	assert.Len(t, withBoth.Fields, 2)
	assert.Equal(t, "email", withBoth.Fields[1].Field)
}

func TestKindOfSkipsUnboundWrappers(t *testing.T) {
	err := errors.New("failed to get recipe").Wrap(errors.NotFound.Explain("Recipe not found!"))

	kind := errors.KindOf(err)
	require.NotNil(t, kind)
	assert.Equal(t, "Recipe not found!", kind.Message)
	assert.Equal(t, http.StatusNotFound, errors.HTTPStatus(err))

	assert.Nil(t, errors.KindOf(errors.New("plain")))
}
