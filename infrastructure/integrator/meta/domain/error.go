package metadomain

import (
	"encoding/json"
	"strings"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// ParseErrorMessage extrai a mensagem de erro de um corpo de resposta. Se o
// corpo não for o JSON de erro esperado, o corpo bruto vira a mensagem.
func ParseErrorMessage(body []byte) string {
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error.Message != "" {
		return resp.Error.Message
	}
	return string(body)
}

// IsTransientError indica se a mensagem corresponde a uma falha passageira
// que vale a pena repetir (indisponibilidade temporária, timeout, rate limit)
func IsTransientError(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "temporarily unavailable") ||
		strings.Contains(lower, "timed out") ||
		strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "rate limit")
}

// IsInvalidCursorError indica se a mensagem corresponde a um cursor de
// paginação inválido ou expirado
func IsInvalidCursorError(message string) bool {
	return strings.Contains(strings.ToLower(message), "cursor")
}
