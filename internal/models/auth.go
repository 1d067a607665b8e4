package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the authenticated identity inside access tokens.
type JWTClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
