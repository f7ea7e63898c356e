package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rodert/learn-hub/core/auth"
	"github.com/Rodert/learn-hub/core/user"
)

const contextTokenKey = "userToken"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
}

type authenticator struct {
	key   []byte
	delta time.Duration
}

func newAuthenticator(key []byte, delta time.Duration) *authenticator {
	return &authenticator{key: key, delta: delta}
}

func (a *authenticator) jwtConfig() middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    a.key,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

func (a *authenticator) claims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    "learn-hub-devapi",
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(a.delta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: usr.Username,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func (a *authenticator) GenerateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(a.key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextUserID(ctx echo.Context) int {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return 0
	}
	id, _ := strconv.Atoi(claims.Subject)
	return id
}

func (s *server) authenticate(uname, pwd string) (userRecord, error) {
	rec, err := s.opts.Store.Users.Find(func(u userRecord) bool { return u.Username == uname })
	if err != nil {
		return userRecord{}, errAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(pwd)); err != nil {
		return userRecord{}, errAuthenticationFailed
	}
	if rec.Status != user.StatusActive {
		return userRecord{}, errAccountDeactivated
	}
	return rec, nil
}

func (s *server) login(ctx echo.Context) error {
	var data auth.LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rec, err := s.authenticate(data.Username, data.Password)
	if err != nil {
		return err
	}
	token, err := s.auth.GenerateToken(s.auth.claims(rec.User))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ok(ctx, http.StatusOK, auth.LoginResponse{
		Token: token,
		User:  auth.Profile{ID: rec.ID, Username: rec.Username, Nickname: rec.Nickname, Status: rec.Status},
	})
}
