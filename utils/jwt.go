package utils

import (
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// GenerateJWT mints a bearer token carrying the user id. Auth itself lives
// in a separate service; this only exists for the middleware and tests.
func GenerateJWT(userID uint, email string, secret []byte) (string, error) {
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "userId": userID,
        "email":  email,
        "exp":    time.Now().Add(time.Hour * 72).Unix(),
    })
    return token.SignedString(secret)
}
