package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"hypercommerce/internal/models"
)

type contextKey string

const userContextKey = contextKey("user")

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"url":        r.URL.String(),
			"remoteAddr": r.RemoteAddr,
		}).Info("request")
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%v", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireAuth resolves the Authorization header to exactly one user or fails
// with 401. The header must hold exactly two space-separated parts, the
// scheme must case-insensitively equal "bearer" and the token must verify
// and resolve to an existing user. Pure lookup, no side effects.
func (app *application) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			app.errorResponse(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 {
			app.errorResponse(w, http.StatusUnauthorized, "invalid Authorization header")
			return
		}
		if !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			app.errorResponse(w, http.StatusUnauthorized, "invalid token")
			return
		}

		userID, err := app.tokens.Verify(parts[1])
		if err != nil {
			app.errorResponse(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := app.users.Get(r.Context(), userID)
		if err != nil {
			app.errorResponse(w, http.StatusUnauthorized, "invalid user")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// currentUser is only meaningful behind requireAuth.
func (app *application) currentUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	if !ok {
		panic("currentUser called outside requireAuth")
	}
	return user
}
