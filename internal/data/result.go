package data

// Result is the outcome of a data source call: either a success carrying data
// or an error carrying a message. The zero value is an error with no message.
type Result[T any] struct {
	data    T
	message string
	ok      bool
}

func Success[T any](data T) Result[T] {
	return Result[T]{data: data, ok: true}
}

func Error[T any](message string) Result[T] {
	return Result[T]{message: message}
}

func (r Result[T]) IsSuccess() bool { return r.ok }

// Data returns the payload and whether the result is a success.
func (r Result[T]) Data() (T, bool) {
	return r.data, r.ok
}

// Message is empty for successes.
func (r Result[T]) Message() string { return r.message }

func (r Result[T]) String() string {
	if r.ok {
		return "Success"
	}
	return "Error(" + r.message + ")"
}
