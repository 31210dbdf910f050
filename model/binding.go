package model

// Binding is a non-owning handle to whatever an object was fetched through.
// Holding a Binding must never keep its target alive.
type Binding interface {
	// Valid reports whether the target still exists.
	Valid() bool
}
