package typesystem

import "fmt"

// NotFoundError indicates a name has no binding in any symbol
// partition. The symbol table returns this from resolve(); the
// analyzer turns it into the "identificador nao declarado" diagnostic
// rather than surfacing the error text itself.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("nao declarado: %s", e.Name)
}

func NewNotFoundError(name string) error {
	return &NotFoundError{Name: name}
}
