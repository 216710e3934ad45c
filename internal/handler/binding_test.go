package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/logvault/logvault/internal/model"
	"github.com/logvault/logvault/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(method, target, body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindErrorReportsWireNames(t *testing.T) {
	c := testContext(http.MethodPost, "/log", `{"project_source":""}`)
	var in model.ErrorLogInput
	err := c.ShouldBindJSON(&in)
	require.Error(t, err)

	appErr := bindError(err)
	assert.Equal(t, apperrors.ErrInvalidRequest, appErr.Type)
	details, ok := appErr.Details.([]FieldError)
	require.True(t, ok)
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"project_source", "error_message"}, fields)
}

func TestBindPage(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
		wantErr   bool
	}{
		{name: "defaults", query: "", wantSkip: 0, wantLimit: 10},
		{name: "explicit", query: "?skip=5&limit=20", wantSkip: 5, wantLimit: 20},
		{name: "zero limit", query: "?limit=0", wantSkip: 0, wantLimit: 0},
		{name: "negative skip", query: "?skip=-1", wantErr: true},
		{name: "not a number", query: "?limit=ten", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := bindPage(testContext(http.MethodGet, "/logs"+tc.query, ""))
			if tc.wantErr {
				var appErr *apperrors.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSkip, q.Skip)
			assert.Equal(t, tc.wantLimit, q.Limit)
		})
	}
}
