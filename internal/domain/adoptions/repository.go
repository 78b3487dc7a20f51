package adoptions

import "context"

// Repository guarda solicitudes en orden de llegada. No hay Update ni Delete:
// una solicitud creada no se edita desde este servicio.
type Repository interface {
	Create(ctx context.Context, r Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context) ([]Request, error)
	ListByPet(ctx context.Context, petID string) ([]Request, error)
}
