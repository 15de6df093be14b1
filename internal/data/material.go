package data

// Material pairs a table item with the metal it is made of.
type Material[T Label] struct {
	Metal Metal
	Item  T
}

// String returns the display label, e.g. "Mithril Plate".
func (m Material[T]) String() string {
	return m.Metal.String() + " " + m.Item.String()
}
