package configs

import (
	"errors"
)

func First[T any](loader Loader, path string) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(err)
	}
	return value
}

// FirstOr is First with an explicit default for the not-configured case,
// so a configured zero value still wins over the default.
func FirstOr[T any](loader Loader, path string, def T) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return def
		}
		panic(err)
	}
	return value
}
