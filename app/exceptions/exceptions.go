// Package exceptions defines the service's domain errors and maps any error
// returned by a handler onto an HTTP response.
package exceptions

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/shopservice/app/dto"
	"github.com/shashiranjanraj/shopservice/pkg/logger"
	"github.com/shashiranjanraj/shopservice/pkg/response"
)

// ErrShopNotFound matches any *ShopNotFoundError via errors.Is.
var ErrShopNotFound = errors.New("shop not found")

// ShopNotFoundError carries the id that failed to resolve.
type ShopNotFoundError struct {
	ShopID int64
}

func NewShopNotFound(id int64) *ShopNotFoundError {
	return &ShopNotFoundError{ShopID: id}
}

func (e *ShopNotFoundError) Error() string {
	return fmt.Sprintf("shop %d not found", e.ShopID)
}

func (e *ShopNotFoundError) Is(target error) bool {
	return target == ErrShopNotFound
}

// InvalidShopIDError is returned when a shop id path segment is not an
// integer.
type InvalidShopIDError struct {
	Raw string
	Err error
}

func (e *InvalidShopIDError) Error() string {
	return fmt.Sprintf("invalid shop id %q", e.Raw)
}

func (e *InvalidShopIDError) Unwrap() error { return e.Err }

// Render writes the response for err. Unknown errors become a 500 whose
// cause is logged but never sent to the client.
func Render(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *ShopNotFoundError
	var invalid *InvalidShopIDError

	switch {
	case errors.As(err, &notFound):
		id := notFound.ShopID
		response.JSON(w, http.StatusNotFound, dto.RestErrorDTO{
			Message: "Shop not found",
			ShopID:  &id,
		})
	case errors.As(err, &invalid):
		response.JSON(w, http.StatusBadRequest, dto.RestErrorDTO{
			Message: "Invalid shop id",
			Value:   invalid.Raw,
		})
	default:
		logger.WithCtx(r.Context()).Error("unhandled error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		response.JSON(w, http.StatusInternalServerError, dto.RestErrorDTO{
			Message: http.StatusText(http.StatusInternalServerError),
		})
	}
}
