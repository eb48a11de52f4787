package middleware

import (
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt"
)

type JwtTokenService interface {
	Create(claims SessionClaimsInput, tokenExpTime int64) (string, error)
	Validate(tokenString string) (*JwtSessionClaims, error)
	ParseSecretGetter(token *jwt.Token) (interface{}, error)
}

type JwtToken struct {
	Secret []byte
}

func NewJwtToken(secret string) (JwtTokenService, error) {
	return &JwtToken{
		Secret: []byte(secret),
	}, nil
}

type SessionClaimsInput struct {
	Subject  string
	Username string
	Email    string
}

// JwtSessionClaims — сессионный токен, выписанный внешним провайдером (HS256, общий секрет)
type JwtSessionClaims struct {
	Subject  string `json:"sub"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.StandardClaims
}

func (tk *JwtToken) Create(claims SessionClaimsInput, tokenExpTime int64) (string, error) {
	data := JwtSessionClaims{
		Subject:  claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: tokenExpTime,
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, data)
	return token.SignedString(tk.Secret)
}

func (tk *JwtToken) Validate(tokenString string) (*JwtSessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtSessionClaims{}, tk.ParseSecretGetter)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*JwtSessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.ExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("token has expired")
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}

func (tk *JwtToken) ParseSecretGetter(token *jwt.Token) (interface{}, error) {
	method, ok := token.Method.(*jwt.SigningMethodHMAC)
	if !ok || method.Alg() != "HS256" {
		return nil, fmt.Errorf("bad sign method")
	}
	return tk.Secret, nil
}
