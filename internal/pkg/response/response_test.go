package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lk2023060901/ai-learning-backend/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   apperrors.Kind
		wantMsg    string
	}{
		{
			name:       "parse error",
			err:        apperrors.NewParseError("no JSON object found"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   apperrors.KindParse,
			wantMsg:    "Failed to parse AI response: no JSON object found",
		},
		{
			name:       "auth error",
			err:        apperrors.NewUnauthorizedError(),
			wantStatus: http.StatusUnauthorized,
			wantKind:   apperrors.KindAuth,
			wantMsg:    "Unauthorized",
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   apperrors.KindInternal,
			wantMsg:    "Internal server error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestSuccessWritesPayloadAsIs(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"content": nil})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content":null}`, w.Body.String())
}
