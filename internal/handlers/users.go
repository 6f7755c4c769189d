package handlers

import (
	"barter/internal/middleware"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	token, claims, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

// LogoutHandler отзывает текущий токен до окончания его срока действия
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if h.Revocations != nil {
		if err := h.Revocations.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			h.writeError(w, r, err, "")
			return
		}
	}
	h.Logger.Info("User logged out", zap.String("user_id", claims.Subject))
	w.WriteHeader(http.StatusNoContent)
}
