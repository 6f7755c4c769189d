package handlers

import (
	"barter/internal/auth"
	"barter/internal/service"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Максимальный размер тела запроса
const maxBodyBytes = 1 << 20

// Revocations - хранилище отозванных токенов (выход из системы)
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Handler оборачивает Service для HTTP
type Handler struct {
	Service     *service.Service
	Tokens      *auth.TokenManager
	Revocations Revocations
	Logger      *zap.Logger
}

// NewHandler создает новый Handler. revocations может быть nil: тогда выход
// из системы не отзывает токен.
func NewHandler(svc *service.Service, tokens *auth.TokenManager, revocations Revocations, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Service:     svc,
		Tokens:      tokens,
		Revocations: revocations,
		Logger:      logger,
	}
}

// PingHandler отвечает "ok" для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError переводит ошибку сервиса в HTTP-ответ. forbidden - текст
// для пользователя при отказе в доступе.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, forbidden string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: ve.Fields})
	case errors.Is(err, service.ErrUnauthenticated):
		http.Error(w, "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		if forbidden == "" {
			forbidden = "Forbidden"
		}
		http.Error(w, forbidden, http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	default:
		h.Logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// decodeJSON читает тело запроса с ограничением размера
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return false
	}
	return true
}

// pathID разбирает положительный id из параметра пути
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
