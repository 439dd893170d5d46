package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

func (e runtimeError) Unwrap() error { return errors.Unwrap(e.error) }

// WrapPanic adds stack trace information to a recovered panic. Error values
// stay reachable through errors.Is and errors.As, and runtime errors still
// satisfy runtime.Error.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		if err, isError := p.(error); isError {
			r := fmt.Errorf("%w\n%s\nrethrown at", err, debug.Stack())
			if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
				return runtimeError{r}
			}
			return r
		}
		return fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
	}
	return nil
}
