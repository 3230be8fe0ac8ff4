package response

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

	"library-backend/internal/shared/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(err error) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	HandleError(c, err)

	var body Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperror.NotFound("BOOK_NOT_FOUND", "Book with ID '%s' not found.", "x"), http.StatusNotFound, "BOOK_NOT_FOUND"},
		{"conflict wrapped", fmt.Errorf("borrow: %w", apperror.Conflict("LOAN_NO_COPIES", "none")), http.StatusConflict, "LOAN_NO_COPIES"},
		{"validation", apperror.Validation("VALIDATION_FAILED", "Validation failed", map[string]string{"isbn": "must be a valid ISBN-13"}), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serve(tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			require.NotNil(t, body.Error)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_HidesInternalMessage(t *testing.T) {
	_, body := serve(errors.New("pq: password authentication failed"))

	require.NotNil(t, body.Error)
	assert.NotContains(t, body.Error.Message, "password")
}

func TestHandleError_ValidationDetails(t *testing.T) {
	_, body := serve(apperror.Validation("VALIDATION_FAILED", "Validation failed", map[string]string{"name": "cannot be blank"}))

	require.NotNil(t, body.Error)
	assert.Equal(t, map[string]interface{}{"name": "cannot be blank"}, body.Error.Details)
}
