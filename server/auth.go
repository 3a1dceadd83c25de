package server

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/argon2"
)

type contextKey string

const (
	format          = "$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s"
	defaultExpiry   = 7 * 24 * time.Hour
	passwordTime    = 1
	passwordMemory  = 64 * 1024
	passwordThreads = 4
	passwordKeyLen  = 32

	UserContextKey = contextKey("user")
)

type Claims struct {
	Name string `json:"name"`
	jwt.StandardClaims
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Name        string `json:"name"`
}

// Auth issues and validates HS256 tokens for the websocket endpoint.
type Auth struct {
	secret []byte
	expiry time.Duration
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret), expiry: defaultExpiry}
}

func GeneratePassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, passwordTime, passwordMemory, passwordThreads, passwordKeyLen)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)
	return fmt.Sprintf(format, argon2.Version, passwordMemory, passwordTime, passwordThreads, b64Salt, b64Hash), nil
}

func ValidatePassword(password, hash string) (bool, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("malformed password hash")
	}
	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, err
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, err
	}
	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, err
	}
	keyLen := uint32(len(decodedHash))
	comparisonHash := argon2.IDKey([]byte(password), salt, time, memory, threads, keyLen)
	return subtle.ConstantTimeCompare(decodedHash, comparisonHash) == 1, nil
}

func (a *Auth) CreateToken(name string) (*TokenResponse, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name": name,
		"exp":  time.Now().Add(a.expiry).Unix(),
	})
	accessToken, err := token.SignedString(a.secret)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{accessToken, name}, nil
}

func (a *Auth) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// Middleware requires a valid token in the query string and puts the user
// name on the request context.
func (a *Auth) Middleware(f http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, tok := r.URL.Query()["token"]
		if !tok || len(token) != 1 {
			http.Error(w, "please login or provide a token", http.StatusBadRequest)
			return
		}
		user, err := a.ValidateToken(token[0])
		if err != nil {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), UserContextKey, user.Name)
		f(w, r.WithContext(ctx))
	}
}
