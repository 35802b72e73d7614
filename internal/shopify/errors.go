package shopify

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrPermission means the access token lacks the write_price_rules scope.
	ErrPermission       = errors.New("token sem permissão write_price_rules")
	ErrUnexpectedStatus = errors.New("status inesperado da API")
)

// StatusError is returned when the API answers with a status other than
// the one the operation expects.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusForbidden && strings.Contains(e.Body, "write_price_rules") {
		return ErrPermission
	}
	return ErrUnexpectedStatus
}
