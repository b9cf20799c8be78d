package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/config"
	"aais-kitchen-backend/internal/platform/idgen"
)

type fakeStore struct {
	mu         sync.Mutex
	byID       map[string]*Account
	franchises map[string]string
	createErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: map[string]*Account{}, franchises: map[string]string{}}
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Create(_ context.Context, a *Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeStore) SetDisabled(_ context.Context, id string, disabled bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok || a.IsDisabled == disabled {
		return 0, nil
	}
	a.IsDisabled = disabled
	return 1, nil
}

func (f *fakeStore) FranchiseOf(_ context.Context, userID string, _ Role) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.franchises[userID], nil
}

func (f *fakeStore) put(t *testing.T, id, email, password string, role Role) *Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	a := &Account{ID: id, Email: email, PasswordHash: string(hash), Name: id, Role: role}
	f.byID[id] = a
	return a
}

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(store AccountStore) (*Service, *clock.Fixed) {
	c := clock.NewFixed(testNow)
	cfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	return newService(store, cfg, c, idgen.NewSequence("user")), c
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to mess_member and normalizes email", func(t *testing.T) {
		svc, _ := newTestService(newFakeStore())
		acct, err := svc.Signup(ctx, SignupInput{Email: " Ravi@Example.com ", Password: "secret1", Name: "Ravi"})
		require.NoError(t, err)
		assert.Equal(t, "user-1", acct.ID)
		assert.Equal(t, "ravi@example.com", acct.Email)
		assert.Equal(t, RoleMessMember, acct.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte("secret1")))
	})

	t.Run("rejects super_admin self registration", func(t *testing.T) {
		svc, _ := newTestService(newFakeStore())
		_, err := svc.Signup(ctx, SignupInput{Email: "a@b.co", Password: "secret1", Role: RoleSuperAdmin})
		assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
	})

	t.Run("rejects short password and bad email", func(t *testing.T) {
		svc, _ := newTestService(newFakeStore())
		_, err := svc.Signup(ctx, SignupInput{Email: "a@b.co", Password: "123"})
		assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
		_, err = svc.Signup(ctx, SignupInput{Email: "not-an-email", Password: "secret1"})
		assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
	})

	t.Run("duplicate email is conflict", func(t *testing.T) {
		store := newFakeStore()
		store.put(t, "u0", "a@b.co", "secret1", RoleMessMember)
		svc, _ := newTestService(store)
		_, err := svc.Signup(ctx, SignupInput{Email: "a@b.co", Password: "secret1"})
		assert.True(t, apierr.Is(err, apierr.CodeConflict))
	})

	t.Run("lost insert race is conflict", func(t *testing.T) {
		store := newFakeStore()
		store.createErr = &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		svc, _ := newTestService(store)
		_, err := svc.Signup(ctx, SignupInput{Email: "a@b.co", Password: "secret1"})
		assert.True(t, apierr.Is(err, apierr.CodeConflict))
	})
}

func TestLoginAndVerify(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.put(t, "u1", "admin@kitchen.in", "secret1", RoleFranchiseAdmin)
	svc, clk := newTestService(store)

	token, acct, err := svc.Login(ctx, "ADMIN@kitchen.in", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", acct.ID)

	sub, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", sub)

	// 期限切れ
	clk.Advance(2 * time.Hour)
	_, err = svc.VerifyToken(token)
	assert.True(t, apierr.Is(err, apierr.CodeUnauthenticated))

	_, _, err = svc.Login(ctx, "admin@kitchen.in", "wrong")
	assert.True(t, apierr.Is(err, apierr.CodeUnauthenticated))

	_, _, err = svc.Login(ctx, "nobody@kitchen.in", "secret1")
	assert.True(t, apierr.Is(err, apierr.CodeUnauthenticated))
}

func TestVerifyToken_RejectsOtherSecretAndAlg(t *testing.T) {
	svc, _ := newTestService(newFakeStore())
	exp := testNow.Add(time.Hour).Unix()

	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": exp}).
		SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.VerifyToken(other)
	assert.Error(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1", "exp": exp}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.VerifyToken(none)
	assert.Error(t, err)
}

func TestSession_UsesStoredRole(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.put(t, "u1", "m@kitchen.in", "secret1", RoleMessMember)
	store.franchises["u1"] = "fr-1"
	svc, _ := newTestService(store)

	sess, err := svc.Session(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, RoleMessMember, sess.Role)
	assert.Equal(t, "fr-1", sess.FranchiseID)

	// 降格・無効化は次のリクエストから効く
	store.byID["u1"].IsDisabled = true
	_, err = svc.Session(ctx, "u1")
	assert.True(t, apierr.Is(err, apierr.CodeForbidden))

	_, err = svc.Session(ctx, "ghost")
	assert.True(t, apierr.Is(err, apierr.CodeUnauthenticated))
}

func TestSetDisabled(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.put(t, "u1", "m@kitchen.in", "secret1", RoleMessMember)
	svc, _ := newTestService(store)

	require.NoError(t, svc.SetDisabled(ctx, "u1", true))
	require.NoError(t, svc.SetDisabled(ctx, "u1", true))
	assert.True(t, store.byID["u1"].IsDisabled)

	err := svc.SetDisabled(ctx, "ghost", true)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}
