package auth

import "github.com/golang-jwt/jwt/v5"

type Authenticator interface {
	GenerateUserToken(userID int64, site, username string) (string, error)
	GenerateAdminToken() (string, error)
	ValidateToken(token string) (*jwt.Token, error)
}
