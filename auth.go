package main

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"aihub/models"
)

// sessionTTL is how long an issued session token stays valid. Logout only
// clears the client cookie; a leaked token remains valid until expiry.
const sessionTTL = 7 * 24 * time.Hour

var jwtSecret []byte // loaded from config in main

// authenticateAdmin checks the supplied password against the stored
// credential record and returns a fresh session token on success.
//
// When no record exists yet, a matching defaultPassword creates it (lazy
// first-login bootstrap). Every failure path returns errInvalidCredentials so
// callers cannot distinguish "no account yet" from "wrong password".
func authenticateAdmin(st Store, password, defaultPassword string) (string, error) {
	rec, err := st.AdminConfig()
	if err != nil {
		return "", err
	}
	if rec == nil {
		if defaultPassword == "" || password != defaultPassword {
			return "", errInvalidCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		rec = &models.AdminConfig{PasswordHash: hash}
		if err := st.CreateAdminConfig(rec); err != nil {
			return "", err
		}
	}
	if err := bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)); err != nil {
		return "", errInvalidCredentials
	}
	token, err := issueSessionToken(jwtSecret, time.Now())
	if err != nil {
		return "", err
	}
	// audit value only; validity is decided by signature and expiry
	if err := st.SetSessionToken(token); err != nil {
		logger.Warn("failed to record session token", zap.Error(err))
	}
	return token, nil
}

// issueSessionToken signs a token claiming {authenticated: true} that expires
// sessionTTL after now.
func issueSessionToken(secret []byte, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"authenticated": true,
		"iat":           now.Unix(),
		"exp":           now.Add(sessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// verifySessionToken fails with errUnauthenticated for absent, malformed,
// tampered or expired tokens, and for tokens without the authenticated claim.
func verifySessionToken(secret []byte, tokenString string) error {
	if tokenString == "" {
		return errUnauthenticated
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return errUnauthenticated
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errUnauthenticated
	}
	if authed, _ := claims["authenticated"].(bool); !authed {
		return errUnauthenticated
	}
	return nil
}
