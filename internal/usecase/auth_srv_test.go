package usecase

import (
	"context"
	"testing"
	"time"

	"cafeteria-booking/internal/data/entity"
	"cafeteria-booking/internal/dto/request"
	"cafeteria-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
}

func TestLoginIssuesSession(t *testing.T) {
	first := "Dev"
	var upserted *entity.User
	var created *entity.Session

	repo := newTestRepository(
		&fakeUserRepo{
			upsertFn: func(ctx context.Context, user *entity.User) (*entity.User, error) {
				upserted = user
				return user, nil
			},
		},
		nil, nil, nil, nil, nil,
		&fakeSessionRepo{
			createFn: func(ctx context.Context, session *entity.Session) error {
				created = session
				return nil
			},
		},
	)

	clock := clockwork.NewFakeClockAt(testTime)
	svc := NewAuthService(repo, testConfig(), clock, testLogger())

	auth, err := svc.Login(context.Background(), &request.LoginRequest{
		EmployeeUID: "emp-001",
		Email:       "dev@example.com",
		FirstName:   &first,
		ManagerName: "Manager 1",
	}, nil, nil)
	require.NoError(t, err)

	require.NotNil(t, upserted)
	assert.Equal(t, "emp-001", upserted.EmployeeUID)
	assert.Equal(t, "Manager 1", upserted.ManagerName)

	require.NotNil(t, created)
	assert.Equal(t, upserted.ID, created.UserID)
	assert.NotEqual(t, uuid.Nil, created.Token)
	assert.Equal(t, testTime.Add(24*time.Hour), created.ExpiresAt)

	assert.Equal(t, created.Token.String(), auth.Token)
	assert.Equal(t, "dev@example.com", auth.Email)
	assert.Equal(t, "Dev", auth.Name)
}

func TestLoginValidation(t *testing.T) {
	svc := NewAuthService(newTestRepository(nil, nil, nil, nil, nil, nil, nil), testConfig(), clockwork.NewFakeClockAt(testTime), testLogger())

	tests := []struct {
		name string
		req  *request.LoginRequest
	}{
		{name: "missing employee uid", req: &request.LoginRequest{Email: "dev@example.com"}},
		{name: "bad email", req: &request.LoginRequest{EmployeeUID: "emp-001", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req, nil, nil)
			require.Error(t, err)

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	token := uuid.New()
	var revoked uuid.UUID

	repo := newTestRepository(nil, nil, nil, nil, nil, nil,
		&fakeSessionRepo{
			revokeFn: func(ctx context.Context, tok uuid.UUID, now time.Time) (bool, error) {
				revoked = tok
				return true, nil
			},
		},
	)

	svc := NewAuthService(repo, testConfig(), clockwork.NewFakeClockAt(testTime), testLogger())

	err := svc.Logout(context.Background(), token.String())
	require.NoError(t, err)
	assert.Equal(t, token, revoked)
}
