package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// NameFromToken reads the profile name claim from an API access token.
// The signature is not checked; the API does that on every call.
func NameFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	name, _ := claims["name"].(string)
	if name == "" {
		return "", errors.New("token has no name claim")
	}
	return name, nil
}
