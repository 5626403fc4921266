package handlers

import (
	"encoding/json"
	"net/http"
)

const (
	msgNotFound         = "ресурс не найден"
	msgMethodNotAllowed = "метод не поддерживается"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondJSON сериализует data в JSON и пишет ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError пишет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{
		Code:    status,
		Message: message,
	})
}

// NotFound обработчик для неизвестных маршрутов
func NotFound(w http.ResponseWriter, r *http.Request) {
	RespondError(w, http.StatusNotFound, msgNotFound)
}

// MethodNotAllowed обработчик для неподдерживаемых методов
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	RespondError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}
