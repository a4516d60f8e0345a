package auth

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jkz07/transcare/config"
)

type fakeRepo struct {
	users  map[uint]User
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uint]User{}, nextID: 1}
}

func (f *fakeRepo) Create(user *User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = *user
	return nil
}

func (f *fakeRepo) FindByEmail(email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copy := u
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByID(userID uint) (User, error) {
	u, ok := f.users[userID]
	if !ok {
		return User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeRepo) Update(user *User) error {
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeRepo) EmailExists(email string) (bool, error) {
	_, err := f.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func testService(repo Repository) Service {
	return NewService(repo, &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	})
}

func TestRegisterHashesPasswordAndNormalizesEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)

	user, err := svc.Register(RegisterInput{Name: " Alex Lima ", Email: "Alex@Example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "alex@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Name != "Alex Lima" {
		t.Fatalf("name not trimmed: %q", user.Name)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Fatalf("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match the password: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)

	if _, err := svc.Register(RegisterInput{Name: "Alex", Email: "alex@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(RegisterInput{Name: "Outro", Email: "ALEX@example.com", Password: "other456"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginIssuesVerifiableTokens(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)

	if _, err := svc.Register(RegisterInput{Name: "Alex", Email: "alex@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tokens, user, err := svc.Login(LoginInput{Email: "alex@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", tokens)
	}

	parsed, err := jwt.Parse(tokens.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if uint(claims["user_id"].(float64)) != user.ID {
		t.Fatalf("user_id claim = %v, want %d", claims["user_id"], user.ID)
	}
}

func TestLoginWrongPasswordRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)

	if _, err := svc.Register(RegisterInput{Name: "Alex", Email: "alex@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, err := svc.Login(LoginInput{Email: "alex@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailGetsSameError(t *testing.T) {
	svc := testService(newFakeRepo())

	// Unknown accounts must be indistinguishable from a bad password.
	_, _, err := svc.Login(LoginInput{Email: "nobody@example.com", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
