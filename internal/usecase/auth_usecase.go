package usecase

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// 管理者ログイン。環境変数のbcryptハッシュと照合するだけの単一パスワード方式。
type AuthUsecase struct {
	passwordHash []byte
	jwtSecret    []byte
	accessTTL    time.Duration
	clock        Clock
}

func NewAuthUsecase(passwordHash string, jwtSecret string, clock Clock) *AuthUsecase {
	return &AuthUsecase{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		accessTTL:    12 * time.Hour,
		clock:        clock,
	}
}

type AdminLoginOutput struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (u *AuthUsecase) Login(password string) (AdminLoginOutput, error) {
	if password == "" {
		return AdminLoginOutput{}, NewHTTPError(http.StatusBadRequest, "password is required")
	}

	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return AdminLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid password")
	}

	now := u.clock.Now()
	expiresAt := now.Add(u.accessTTL)

	claims := jwt.MapClaims{
		"role": "ADMIN",
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.jwtSecret)
	if err != nil {
		return AdminLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return AdminLoginOutput{
		AccessToken: signed,
		ExpiresIn:   int64(u.accessTTL.Seconds()),
	}, nil
}
