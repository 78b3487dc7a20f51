package pets

import "context"

// Repository es el dueño exclusivo de la colección de mascotas.
// List devuelve las mascotas en orden de inserción.
// Update y Delete devuelven ErrNotFound si el id no existe, sin tocar la colección.
// Update lee, aplica fn y escribe de forma atómica; si fn falla no escribe nada.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, id string, fn func(*Pet) error) (Pet, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
}
