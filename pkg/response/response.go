// Package response writes JSON bodies. The API returns bare resources and
// arrays, not an envelope, so errors use a flat {"message": ...} object.
package response

import (
	"encoding/json"
	"net/http"
	"reflect"
)

type errorBody struct {
	Message string `json:"message"`
}

// JSON writes v with the given status. A nil slice is written as [] so list
// endpoints never answer null.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice && rv.IsNil() {
		v = reflect.MakeSlice(rv.Type(), 0, 0).Interface()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// OK sends a 200 with v.
func OK(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Error sends {"message": message} with status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Message: message})
}

// NotFound sends a generic 404 for unmatched routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	Error(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowed sends a 405 for known paths hit with the wrong verb.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}
