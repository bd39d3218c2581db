package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"vibin_client/models"
	"vibin_client/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/golang-jwt/jwt/v5"
)

// AuthProvider supplies the signed-in user. A nil user with a nil error means
// nobody is signed in.
type AuthProvider interface {
	CurrentUser(ctx context.Context) (*models.CurrentUser, error)
}

// UserClaims are the claims carried by the backend's access tokens.
type UserClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenAuth reads the current user out of a JWT access token. With a secret it
// verifies the HS256 signature; without one it only decodes the claims, the
// backend being the authority on the signature.
type TokenAuth struct {
	secret []byte
	token  string
	now    func() time.Time
}

// NewTokenAuth creates a provider for a fixed token.
func NewTokenAuth(secret, token string) *TokenAuth {
	return &TokenAuth{
		secret: []byte(secret),
		token:  strings.TrimSpace(token),
		now:    time.Now,
	}
}

// CurrentUser returns the user of the configured token.
func (a *TokenAuth) CurrentUser(ctx context.Context) (*models.CurrentUser, error) {
	return a.UserFromToken(a.token), nil
}

// UserFromToken validates tokenString and returns its user, or nil when the
// token is empty, expired or invalid.
func (a *TokenAuth) UserFromToken(tokenString string) *models.CurrentUser {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil
	}

	claims := &UserClaims{}
	var err error
	if len(a.secret) > 0 {
		_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.secret, nil
		}, jwt.WithTimeFunc(a.now))
	} else {
		_, _, err = jwt.NewParser().ParseUnverified(tokenString, claims)
		if err == nil {
			if exp, _ := claims.GetExpirationTime(); exp != nil && !a.now().Before(exp.Time) {
				err = jwt.ErrTokenExpired
			}
		}
	}
	if err != nil {
		log.Printf("⚠️ Rejecting session token: %v", err)
		return nil
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		log.Println("⚠️ Rejecting session token: no user id claim")
		return nil
	}
	return &models.CurrentUser{ID: userID, Name: claims.Name, Token: tokenString}
}

// DynamoSessionAuth looks up the device session in DynamoDB and validates its
// token with Tokens. An empty Table means models.SessionsTable.
type DynamoSessionAuth struct {
	Dynamo   *DynamoService
	Table    string
	DeviceID string
	Tokens   *TokenAuth
}

// CurrentUser fetches the session of DeviceID
func (a *DynamoSessionAuth) CurrentUser(ctx context.Context) (*models.CurrentUser, error) {
	key := map[string]types.AttributeValue{
		"deviceId": &types.AttributeValueMemberS{Value: a.DeviceID},
	}
	table := a.Table
	if table == "" {
		table = models.SessionsTable
	}
	item, err := a.Dynamo.GetItem(ctx, table, key)
	if errors.Is(err, ErrItemNotFound) {
		log.Printf("🔍 No session for device %s", a.DeviceID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session models.Session
	if err := attributevalue.UnmarshalMap(item, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	// Sessions written before the token rename keep it under accessToken
	if session.Token == "" {
		session.Token = utils.ExtractString(item, "accessToken")
	}

	user := a.Tokens.UserFromToken(session.Token)
	if user == nil {
		return nil, nil
	}
	if session.UserID != "" && session.UserID != user.ID {
		log.Printf("⚠️ Session owner %s does not match token user %s", session.UserID, user.ID)
		return nil, nil
	}
	return user, nil
}
