package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/omara/internal/auth"
	"github.com/erazemk/omara/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	DB        *sql.DB
	JWTSecret string
}

type loginRequest struct {
	Passcode string `json:"passcode"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type changePasscodeRequest struct {
	CurrentPasscode string `json:"current_passcode"`
	NewPasscode     string `json:"new_passcode"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Passcode == "" {
		jsonError(w, http.StatusBadRequest, "passcode required")
		return
	}

	hash, err := store.GetPasscodeHash(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to read passcode", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if hash == "" {
		jsonError(w, http.StatusServiceUnavailable, "passcode not set up")
		return
	}

	if err := auth.CheckPasscode(hash, req.Passcode); err != nil {
		if !errors.Is(err, auth.ErrWrongPasscode) {
			slog.Error("failed to check passcode", "error", err)
		}
		slog.Warn("login failed", "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid passcode")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("owner logged in", "remote", r.RemoteAddr)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token})
}

// Logout handles POST /api/auth/logout. The token stays revoked until it
// would have expired anyway.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := store.RevokeToken(r.Context(), h.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
		slog.Error("failed to revoke token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	slog.Info("owner logged out")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// ChangePasscode handles PUT /api/auth/passcode.
func (h *AuthHandler) ChangePasscode(w http.ResponseWriter, r *http.Request) {
	var req changePasscodeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CurrentPasscode == "" || req.NewPasscode == "" {
		jsonError(w, http.StatusBadRequest, "current and new passcode required")
		return
	}

	hash, err := store.GetPasscodeHash(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := auth.CheckPasscode(hash, req.CurrentPasscode); err != nil {
		jsonError(w, http.StatusUnauthorized, "current passcode is incorrect")
		return
	}

	newHash, err := auth.HashPasscode(req.NewPasscode)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := store.SetPasscodeHash(r.Context(), h.DB, newHash); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update passcode")
		return
	}

	slog.Info("owner changed passcode")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "passcode updated"})
}
