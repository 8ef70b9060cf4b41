package repository

// SequenceRepository puerto del contador de SKU por prefijo.
type SequenceRepository interface {
	// Next asigna atómicamente el siguiente número del prefijo (arranca en 1).
	// Dos llamadas concurrentes sobre el mismo prefijo nunca reciben el mismo
	// número: la implementación debe resolverlo con un único upsert-increment
	// atómico del motor de almacenamiento, sin locking a nivel de aplicación.
	Next(prefix string) (int, error)
}
