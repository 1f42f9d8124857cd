package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusinessThroughWrapping(t *testing.T) {
	err := fmt.Errorf("join: %w", ErrDuplicateEntry)

	assert.True(t, IsBusiness(err, CodeDuplicateEntry))
	assert.True(t, errors.Is(err, ErrDuplicateEntry))
	assert.False(t, IsBusiness(err, CodeInvalidInput))
}

func TestWithCauseKeepsCodeAndCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := WithCause(CodeStoreUnavailable, cause)

	assert.True(t, IsBusiness(err, CodeStoreUnavailable))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFromErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrDuplicateEntry, http.StatusConflict, CodeDuplicateEntry},
		{ErrQueueEntryNotFound, http.StatusNotFound, CodeQueueEntryNotFound},
		{ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput},
		{ErrStoreUnavailable, http.StatusServiceUnavailable, CodeStoreUnavailable},
		{WithCause(CodeStoreUnavailable, errors.New("timeout")), http.StatusServiceUnavailable, CodeStoreUnavailable},
		{errors.New("boom"), http.StatusInternalServerError, "failed"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		FromError(c, tc.err, "failed")

		assert.Equal(t, tc.status, w.Code)
		var body HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Code)
	}
}
