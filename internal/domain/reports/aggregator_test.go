package reports

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Empty(t *testing.T) {
	rep := Summarize(nil, nil)

	assert.Zero(t, rep.TotalPets)
	assert.Zero(t, rep.TotalRequests)
	assert.Zero(t, rep.AdoptionRate)
	assert.Len(t, rep.PetsBySpecies, len(pets.AllSpecies))
	assert.Len(t, rep.PetsByStatus, len(pets.AllStatuses))
	assert.Len(t, rep.RequestsByStatus, len(adoptions.AllStatuses))
	assert.Empty(t, rep.RecentRequests)
}

func TestSummarize_Counts(t *testing.T) {
	ps := []pets.Pet{
		{ID: "1", Species: pets.SpeciesDog, Status: pets.StatusAvailable},
		{ID: "2", Species: pets.SpeciesDog, Status: pets.StatusAdopted},
		{ID: "3", Species: pets.SpeciesCat, Status: pets.StatusPending},
		{ID: "4", Species: pets.SpeciesOther, Status: pets.StatusAdopted},
	}
	rs := []adoptions.Request{
		{ID: "r1", PetID: "1", Status: adoptions.StatusPending},
		{ID: "r2", PetID: "2", Status: adoptions.StatusApproved},
	}

	rep := Summarize(ps, rs)

	assert.Equal(t, 4, rep.TotalPets)
	assert.Equal(t, 2, rep.PetsBySpecies[pets.SpeciesDog])
	assert.Equal(t, 1, rep.PetsBySpecies[pets.SpeciesCat])
	assert.Equal(t, 1, rep.PetsBySpecies[pets.SpeciesOther])
	assert.Equal(t, 2, rep.PetsByStatus[pets.StatusAdopted])
	assert.Equal(t, 2, rep.TotalRequests)
	assert.Equal(t, 1, rep.RequestsByStatus[adoptions.StatusPending])
	assert.Equal(t, 0, rep.RequestsByStatus[adoptions.StatusRejected])
	assert.InDelta(t, 0.5, rep.AdoptionRate, 1e-9)
}

func TestSummarize_SumsMatchTotals(t *testing.T) {
	species := []pets.Species{pets.SpeciesDog, pets.SpeciesCat, pets.SpeciesOther, pets.Species("ferret")}
	statuses := []pets.Status{pets.StatusAvailable, pets.StatusPending, pets.StatusAdopted}

	for n := 0; n < 25; n++ {
		ps := make([]pets.Pet, 0, n)
		for i := 0; i < n; i++ {
			ps = append(ps, pets.Pet{
				ID:      fmt.Sprintf("p%d", i),
				Species: species[(i*7)%len(species)],
				Status:  statuses[(i*5)%len(statuses)],
			})
		}

		rep := Summarize(ps, nil)

		bySpecies, byStatus := 0, 0
		for _, c := range rep.PetsBySpecies {
			bySpecies += c
		}
		for _, c := range rep.PetsByStatus {
			byStatus += c
		}
		require.Equal(t, rep.TotalPets, bySpecies, "n=%d", n)
		require.Equal(t, rep.TotalPets, byStatus, "n=%d", n)
	}
}

func TestSummarize_RecentRequests_NewestFirst(t *testing.T) {
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	rs := make([]adoptions.Request, 0, 7)
	for i := 0; i < 7; i++ {
		rs = append(rs, adoptions.Request{
			ID:          fmt.Sprintf("r%d", i),
			Status:      adoptions.StatusPending,
			SubmittedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	rep := Summarize(nil, rs)

	require.Len(t, rep.RecentRequests, RecentLimit)
	assert.Equal(t, "r6", rep.RecentRequests[0].ID)
	assert.Equal(t, "r2", rep.RecentRequests[RecentLimit-1].ID)
	assert.Equal(t, "r0", rs[0].ID, "no reordena la entrada")
}

type fakePets []pets.Pet

func (f fakePets) List(ctx context.Context) ([]pets.Pet, error) { return f, nil }

type fakeRequests struct {
	items []adoptions.Request
	err   error
}

func (f fakeRequests) List(ctx context.Context) ([]adoptions.Request, error) {
	return f.items, f.err
}

func TestService_Document(t *testing.T) {
	svc := NewService(
		fakePets{{ID: "1", Species: pets.SpeciesCat, Status: pets.StatusAdopted}},
		fakeRequests{items: []adoptions.Request{{
			ID:        "r1",
			PetID:     "1",
			PetName:   "Misu",
			Applicant: adoptions.Applicant{Name: "Ana"},
			Status:    adoptions.StatusApproved,
		}}},
	)
	now := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	doc, err := svc.Document(context.Background())
	require.NoError(t, err)

	assert.Equal(t, now, doc.GeneratedAt)
	assert.Equal(t, 1, doc.TotalPets)
	assert.InDelta(t, 1.0, doc.AdoptionRate, 1e-9)
	require.Len(t, doc.RecentRequests, 1)
	assert.Equal(t, "Ana", doc.RecentRequests[0].ApplicantName)
}

func TestService_Summary_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(fakePets{}, fakeRequests{err: boom})

	_, err := svc.Summary(context.Background())
	assert.ErrorIs(t, err, boom)
}
