package utils

import "fmt"

// RecoverWithError turns a panic in the deferring function into *err.
// A panic value that is an error stays reachable through errors.Is/As.
func RecoverWithError(err *error) {
	rv := recover()
	if rv == nil {
		return
	}
	if panicErr, ok := rv.(error); ok {
		*err = fmt.Errorf("recovered from panic: %w", panicErr)
		return
	}
	*err = fmt.Errorf("recovered from panic: %v", rv)
}
