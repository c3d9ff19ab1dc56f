// try package wraps (value, error) pairs returned by functions,
// to let tests and command entrypoints be written in a single line.
//
//	novel := try.To(db.Get(ctx, 1)).OrFatal(t)
package try

// something have method `Fatal`.
//
// For example in standard libraries: *testing.T, *log.Logger
type Fataler interface {
	Fatal(...any)
}

// Result of a function returning (T, error).
type Either[T any] struct {
	value T
	err   error
}

func To[T any](value T, err error) Either[T] {
	if err != nil {
		return Either[T]{err: err}
	}
	return Either[T]{value: value}
}

// When Either has no error, it just return the T value.
//
// Otherwise, it calls ftl.Fatal(err).
// If ftl has "Helper()" method (like *testing.T), it is called before `Fatal`.
func (e Either[T]) OrFatal(ftl Fataler) T {
	if e.err == nil {
		return e.value
	}
	if hlp, ok := ftl.(interface{ Helper() }); ok {
		hlp.Helper()
	}
	ftl.Fatal(e.err)
	return *new(T)
}
