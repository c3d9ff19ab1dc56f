// args adapts parse functions to flag.Value.
package args

// Adapter is a flag.Value backed by a parse function.
type Adapter[T interface{ String() string }] struct {
	value  T
	parser func(string) (T, error)
	isSet  bool
}

func (a *Adapter[T]) String() string {
	if a.isSet {
		return a.value.String()
	}
	return ""
}

// Set parses s. On error, the adapter is left unchanged.
func (a *Adapter[T]) Set(s string) error {
	v, err := a.parser(s)
	if err != nil {
		return err
	}
	a.isSet = true
	a.value = v
	return nil
}

// Value returns the parsed value, or zero value of T if not set.
func (a *Adapter[T]) Value() T {
	return a.value
}

// IsSet tells whether the flag has been set.
func (a *Adapter[T]) IsSet() bool {
	return a.isSet
}

// Parser creates a flag.Value which parses with the function.
//
//	loopType := args.Parser(looper.ParseLoopType)
//	flag.Var(loopType, "type", "loop type")
func Parser[T interface{ String() string }](parser func(string) (T, error)) *Adapter[T] {
	return &Adapter[T]{parser: parser}
}
