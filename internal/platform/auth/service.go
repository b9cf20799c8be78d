package auth

import (
	"context"
	"database/sql"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/config"
	"aais-kitchen-backend/internal/platform/db"
	"aais-kitchen-backend/internal/platform/idgen"
)

const minPasswordLen = 6

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*Account, error)
	Login(ctx context.Context, email, password string) (string, *Account, error)
	VerifyToken(token string) (string, error)
	Session(ctx context.Context, userID string) (*Session, error)
	SetDisabled(ctx context.Context, userID string, disabled bool) error
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Contact  string
	Role     Role
}

type Service struct {
	store  AccountStore
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
	id     idgen.IDGen
}

func NewService(conn *sql.DB, cfg config.AuthConfig) *Service {
	return newService(NewStore(conn), cfg, clock.Real(), idgen.UUID())
}

func newService(store AccountStore, cfg config.AuthConfig, c clock.Clock, id idgen.IDGen) *Service {
	return &Service{
		store:  store,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		clock:  c,
		id:     id,
	}
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (*Account, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apierr.Invalid("invalid email")
	}
	if len(in.Password) < minPasswordLen {
		return nil, apierr.Invalid(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	role := in.Role
	if role == "" {
		role = RoleMessMember
	}
	if !role.SelfRegistrable() {
		return nil, apierr.Invalid("role must be mess_member or franchise_admin")
	}

	exists, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists != nil {
		return nil, apierr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	id, err := s.id.New()
	if err != nil {
		return nil, err
	}

	acct := &Account{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Contact:      strings.TrimSpace(in.Contact),
		Role:         role,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.store.Create(ctx, acct); err != nil {
		// 同時登録で UNIQUE(email) に負けた側
		if db.IsDuplicateKey(err) {
			return nil, apierr.Conflict("email already registered")
		}
		return nil, err
	}
	return acct, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, *Account, error) {
	acct, err := s.store.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if acct == nil {
		return "", nil, apierr.Unauthenticated("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", nil, apierr.Unauthenticated("invalid email or password")
	}
	if acct.IsDisabled {
		return "", nil, apierr.Forbidden("account disabled")
	}
	if !acct.Role.Valid() {
		return "", nil, apierr.Forbidden("unknown role")
	}

	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  acct.ID,
		"role": string(acct.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return tokenString, acct, nil
}

// VerifyToken: 署名と期限を検証して sub を返す
func (s *Service) VerifyToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// alg 固定（none攻撃とか回避）
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || token == nil || !token.Valid {
		return "", apierr.Unauthenticated("invalid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", apierr.Unauthenticated("invalid sub")
	}
	return sub, nil
}

// Session: ロールと所属フランチャイズは毎回 DB から引き直す
func (s *Service) Session(ctx context.Context, userID string) (*Session, error) {
	acct, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, apierr.Unauthenticated("account not found")
	}
	if acct.IsDisabled {
		return nil, apierr.Forbidden("account disabled")
	}
	if !acct.Role.Valid() {
		return nil, apierr.Forbidden("unknown role")
	}

	fid, err := s.store.FranchiseOf(ctx, acct.ID, acct.Role)
	if err != nil {
		return nil, err
	}
	return &Session{
		UserID:      acct.ID,
		Email:       acct.Email,
		Name:        acct.Name,
		Role:        acct.Role,
		FranchiseID: fid,
	}, nil
}

func (s *Service) SetDisabled(ctx context.Context, userID string, disabled bool) error {
	n, err := s.store.SetDisabled(ctx, userID, disabled)
	if err != nil {
		return err
	}
	if n == 0 {
		// 値が変わらない場合も 0 になるので存在確認する
		acct, err := s.store.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if acct == nil {
			return apierr.NotFound("account not found")
		}
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
