package errorbank

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func TestKindMapping(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		code   codes.Code
	}{
		{BadRequest("bad"), http.StatusBadRequest, codes.InvalidArgument},
		{Conflict("conflict"), http.StatusConflict, codes.AlreadyExists},
		{NotFound("missing"), http.StatusNotFound, codes.NotFound},
		{Unprocessable("nope"), http.StatusUnprocessableEntity, codes.FailedPrecondition},
		{Internal("boom"), http.StatusInternalServerError, codes.Internal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode())
		assert.Equal(t, tc.code, tc.err.GRPCCode())
	}
}

func TestWithCauseUnwraps(t *testing.T) {
	cause := errors.New("row not found")
	err := NotFound("order not found", WithCause(cause))

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "order not found: row not found", err.Error())
}

func TestFrom(t *testing.T) {
	appErr := Conflict("stock changed")
	wrapped := fmt.Errorf("transition failed: %w", appErr)

	require.Equal(t, appErr, From(wrapped))

	plain := errors.New("disk on fire")
	converted := From(plain)
	assert.Equal(t, KindInternal, converted.Kind())
	assert.True(t, errors.Is(converted, plain))

	assert.Nil(t, From(nil))
}

func TestDetails(t *testing.T) {
	err := BadRequest("product 9 not found", WithDetail("product_id", int64(9)))
	require.NotNil(t, err.Details())
	assert.Equal(t, int64(9), err.Details()["product_id"])
}
