package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafeteria-booking/internal/data/entity"
	"cafeteria-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSessionRepo struct {
	session *entity.Session
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return nil
}

func (f *fakeSessionRepo) FindValid(ctx context.Context, token uuid.UUID, now time.Time) (*entity.Session, error) {
	if f.session != nil && f.session.Token == token {
		return f.session, nil
	}
	return nil, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token uuid.UUID, now time.Time) (bool, error) {
	return false, nil
}

func (f *fakeSessionRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	return 0, nil
}

func TestAuthSession(t *testing.T) {
	userID := uuid.New()
	token := uuid.New()
	repo := &fakeSessionRepo{
		session: &entity.Session{
			BaseSimple: entity.BaseSimple{ID: uuid.New()},
			UserID:     userID,
			Token:      token,
			ExpiresAt:  time.Now().Add(time.Hour),
		},
	}

	var gotUserID uuid.UUID
	var hadUser bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, hadUser = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	clock := clockwork.NewRealClock()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + token.String(), wantStatus: http.StatusNoContent},
		{name: "unknown token", authHeader: "Bearer " + uuid.New().String(), wantStatus: http.StatusUnauthorized},
		{name: "malformed token", authHeader: "Bearer not-a-uuid", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic " + token.String(), wantStatus: http.StatusUnauthorized},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hadUser = false
			mw := AuthSession(repo, clock, zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/api/reservations/mine", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusNoContent {
				assert.True(t, hadUser)
				assert.Equal(t, userID, gotUserID)
			}
		})
	}
}

func TestOptionalAuthSessionPassesThrough(t *testing.T) {
	repo := &fakeSessionRepo{}

	var hadUser bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadUser = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	mw := OptionalAuthSession(repo, clockwork.NewRealClock(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/reservations/seats", nil)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, hadUser)
}
