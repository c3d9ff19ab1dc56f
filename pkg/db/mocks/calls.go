// this package provide "mock" implementation of database for testing.
//
// Each mock has `Impl` to be set behaviors and `Calls` to be recorded arguments.
// Methods without `Impl` return an error.
package mocks

import "errors"

type CallLog[T any] []T

func (cl CallLog[T]) Times() int {
	return len(cl)
}

var errNotImplemented = errors.New("[MOCK] not implemented")
