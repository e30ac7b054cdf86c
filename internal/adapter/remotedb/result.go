package remotedb

// Result is the remote API envelope: either Data on success or an Error
// message on failure.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps data in a successful result.
func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failed result.
func Fail[T any](msg string) Result[T] {
	return Result[T]{Error: msg}
}
