package service

import (
	"callcenter_english_backend/internal/config"
	"callcenter_english_backend/internal/model"
	"callcenter_english_backend/internal/repository"
	"callcenter_english_backend/internal/util"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthTestService(t *testing.T) (*AuthService, sqlmock.Sqlmock, func()) {
	t.Helper()
	gdb, mock, cleanup := newMockDB(t)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-that-is-long-enough-0"
	cfg.JWT.ExpireTime = 7 * 24 * time.Hour

	return NewAuthService(repository.NewUserRepository(gdb), cfg), mock, cleanup
}

func userRows(email, passwordHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "deleted_at", "email", "password", "first_name", "last_name"}).
		AddRow(1, time.Now(), time.Now(), nil, email, passwordHash, "Maria", "Santos")
}

func TestRegisterIssuesValidToken(t *testing.T) {
	svc, mock, cleanup := newAuthTestService(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user := &model.User{Email: "maria@example.com", Password: "s3cretpass", FirstName: "Maria", LastName: "Santos"}
	token, err := svc.Register(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The stored password must be a bcrypt hash of the original.
	assert.NotEqual(t, "s3cretpass", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cretpass")))

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, mock, cleanup := newAuthTestService(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("whatever"), bcrypt.DefaultCost)
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRows("maria@example.com", string(hash)))

	_, err := svc.Register(&model.User{Email: "maria@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginRoundtrip(t *testing.T) {
	svc, mock, cleanup := newAuthTestService(t)
	defer cleanup()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRows("maria@example.com", string(hash)))

	token, user, err := svc.Login("maria@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "maria@example.com", user.Email)
}

func TestLoginFailureShapeDoesNotRevealAccounts(t *testing.T) {
	// Wrong password and unknown email must be indistinguishable.
	svc, mock, cleanup := newAuthTestService(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpass"), bcrypt.DefaultCost)
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRows("maria@example.com", string(hash)))

	_, _, wrongPassErr := svc.Login("maria@example.com", "wrongpass")

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, noUserErr := svc.Login("ghost@example.com", "anything")

	assert.ErrorIs(t, wrongPassErr, util.ErrInvalidCredentials)
	assert.ErrorIs(t, noUserErr, util.ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr.Error(), noUserErr.Error())
}
