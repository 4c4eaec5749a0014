package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is an error that knows the HTTP status it maps to.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	InvalidPageParam   = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
	InvalidLimitParam  = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
	InvalidIDParam     = &Failure{Code: http.StatusBadRequest, Message: "invalid id parameter"}
	EmptyUpdateRequest = &Failure{Code: http.StatusBadRequest, Message: "update request cannot be empty"}
)

func (e *Failure) Error() string {
	return e.Message
}

func withCode(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest turns err into a 400 failure. nil stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return withCode(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return withCode(http.StatusBadRequest, msg)
}

// Unimplemented reports a capability that is switched off in this deployment.
func Unimplemented(what string) error {
	return withCode(http.StatusNotImplemented, what)
}

func NotFound(msg string) error {
	return withCode(http.StatusNotFound, msg)
}

// EntityNotFound names the entity and the missing id, e.g. "room 42 not found".
func EntityNotFound(entityName string, id int64) error {
	return NotFound(fmt.Sprintf("%s %d not found", entityName, id))
}

// Conflict is returned when a request is valid but the current state forbids it.
func Conflict(msg string) error {
	return withCode(http.StatusConflict, msg)
}

// GetCode digs a Failure out of err's chain. Anything else is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return err != nil && GetCode(err) == http.StatusNotFound
}
