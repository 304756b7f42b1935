package wire

import (
	"campus-resources/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// POST /api/auth/register - Create account, returns a token
	r.Post("/api/auth/register", authHandler.Register)

	// POST /api/auth/login - Exchange credentials for a token
	r.Post("/api/auth/login", authHandler.Login)
}
