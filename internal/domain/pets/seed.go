package pets

import "context"

// SampleCatalog es el catálogo con el que arranca una instalación nueva.
func SampleCatalog() []CreateInput {
	return []CreateInput{
		{
			Name:        "Max",
			Species:     SpeciesDog,
			Breed:       "Golden Retriever",
			Age:         3,
			Sex:         SexMale,
			Size:        SizeLarge,
			Description: "Juguetón y muy sociable con niños.",
		},
		{
			Name:        "Luna",
			Species:     SpeciesCat,
			Breed:       "Siamés",
			Age:         2,
			Sex:         SexFemale,
			Size:        SizeSmall,
			Description: "Tranquila, ideal para departamento.",
		},
		{
			Name:        "Rocky",
			Species:     SpeciesDog,
			Breed:       "Bulldog",
			Status:      StatusPending,
			Age:         5,
			Sex:         SexMale,
			Size:        SizeMedium,
			Description: "Le gustan los paseos cortos.",
		},
		{
			Name:        "Kiwi",
			Species:     SpeciesOther,
			Breed:       "Periquito",
			Status:      StatusAdopted,
			Age:         1,
			Sex:         SexUnknown,
			Size:        SizeSmall,
			Description: "Canta por las mañanas.",
		},
	}
}

// Seed carga SampleCatalog solo si el repositorio está vacío.
// Devuelve cuántas mascotas agregó.
func (s *Service) Seed(ctx context.Context) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	n := 0
	for _, in := range SampleCatalog() {
		if _, err := s.Add(ctx, in); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
