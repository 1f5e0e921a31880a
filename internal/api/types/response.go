// internal/api/types/response.go
package types

// ListResponse defines a generic structure for list API responses.
// T represents the type of data contained in the 'Data' slice.
type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Limit int64 `json:"limit"`
	Count int   `json:"count"`
}
