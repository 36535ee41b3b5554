package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrInvalidToken = errors.New("invalid token")

type Config struct {
	Secret string        `envconfig:"JWT_SECRET" default:"librarysecret"`
	TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

type Profile struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type Claims struct {
	Profile Profile `json:"profile"`
	Email   string  `json:"email"`
	jwt.RegisteredClaims
}

type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewIssuer(cfg Config) *Issuer {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{
		key: []byte(cfg.Secret),
		ttl: ttl,
		now: time.Now,
	}
}

// Issue signs an HS256 token for the given profile.
func (i *Issuer) Issue(profile Profile, email string) (string, time.Time, error) {
	expiresAt := i.now().Add(i.ttl)
	claims := &Claims{
		Profile: profile,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.UserID,
			IssuedAt:  jwt.NewNumericDate(i.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Profile.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type ctxKey int

const profileKey ctxKey = iota + 1

func SetAuthContext(ctx context.Context, userID, role string) context.Context {
	return context.WithValue(ctx, profileKey, Profile{UserID: userID, Role: role})
}

func FromContext(ctx context.Context) (Profile, bool) {
	p, ok := ctx.Value(profileKey).(Profile)
	return p, ok
}

func IsAdmin(ctx context.Context) bool {
	p, ok := FromContext(ctx)
	return ok && p.Role == RoleAdmin
}
