package router

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinhvq/gigmarket-be/internal/api/domain"
	"github.com/trinhvq/gigmarket-be/internal/api/handler"
	"github.com/trinhvq/gigmarket-be/internal/api/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeResolver struct {
	profile *model.Profile
	err     error
}

func (f *fakeResolver) GetProfileByID(ctx context.Context, profileID int64) (*model.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func TestProfileAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	storedProfile := &model.Profile{
		ID:        1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      domain.RoleClient,
		Balance:   decimal.RequireFromString("1000"),
	}

	tests := []struct {
		name        string
		header      string
		resolver    *fakeResolver
		wantStatus  int
		wantHandled bool
	}{
		{
			name:        "resolves known profile",
			header:      "1",
			resolver:    &fakeResolver{profile: storedProfile},
			wantStatus:  http.StatusOK,
			wantHandled: true,
		},
		{
			name:       "missing header",
			resolver:   &fakeResolver{profile: storedProfile},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-integer header",
			header:     "abc",
			resolver:   &fakeResolver{profile: storedProfile},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown profile",
			header:     "99",
			resolver:   &fakeResolver{err: domain.ErrProfileNotFound},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "store failure",
			header:     "1",
			resolver:   &fakeResolver{err: errors.New("connection reset")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handled := false

			r := gin.New()
			r.Use(ProfileAuth(logger, tt.resolver))
			r.GET("/contracts", func(c *gin.Context) {
				handled = true

				value, ok := c.Get(handler.ProfileContextKey)
				require.True(t, ok)
				profile, ok := value.(*model.Profile)
				require.True(t, ok)
				assert.Equal(t, storedProfile.ID, profile.ID)

				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/contracts", nil)
			if tt.header != "" {
				req.Header.Set(ProfileHeader, tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantHandled, handled)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("sets cors headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), ProfileHeader)
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/health", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
