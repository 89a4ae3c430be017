package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodySize ограничение на размер JSON тела запроса
const MaxBodySize = 1 << 20

// Decode читает JSON тело запроса в T. Лишние поля игнорируются,
// пустое тело и тело больше MaxBodySize - ошибка
func Decode[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var payload T

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, errors.New("empty request body")
		}
		return payload, fmt.Errorf("invalid json: %w", err)
	}

	return payload, nil
}

// Status код ответа для ошибки Decode: 413 для слишком большого тела, иначе 400
func Status(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
