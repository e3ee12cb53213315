package donations

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamp-aid/backend/internal/models"
)

func seedProject(store *MemoryStore) *models.Project {
	p := &models.Project{
		Name:               "Moroto Solar Water Pump Initiative",
		Goal:               75000,
		Raised:             45000,
		Donors:             128,
		IsPublic:           true,
		IsOpenForDonations: true,
	}
	store.SeedProject(p)
	return p
}

func TestRecordIncrementsProjectTotals(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := seedProject(store)

	d := &models.Donation{
		ProjectID: p.ID,
		Amount:    250,
		DonorType: models.DonorIndividual,
		Name:      "Okello James",
		Cause:     "Clean water",
	}
	require.NoError(t, store.Record(ctx, d))
	assert.NotEqual(t, uuid.Nil, d.ID)

	got := store.Project(p.ID)
	require.NotNil(t, got)
	assert.Equal(t, 45250.0, got.Raised)
	assert.Equal(t, 129, got.Donors)
}

func TestRecordUnknownProject(t *testing.T) {
	store := NewMemoryStore()

	err := store.Record(context.Background(), &models.Donation{
		ProjectID: uuid.New(),
		Amount:    100,
		DonorType: models.DonorIndividual,
		Name:      "Okello James",
	})
	require.ErrorIs(t, err, ErrProjectNotFound)

	_, count, err := store.Totals(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestConcurrentDonationsKeepTotalsConsistent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := seedProject(store)
	baseRaised, baseDonors := p.Raised, p.Donors

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Record(ctx, &models.Donation{
				ProjectID: p.ID,
				Amount:    10,
				DonorType: models.DonorIndividual,
				Name:      "Anonymous",
			})
		}()
	}
	wg.Wait()

	got := store.Project(p.ID)
	require.NotNil(t, got)
	assert.Equal(t, baseRaised+n*10, got.Raised)
	assert.Equal(t, baseDonors+n, got.Donors)

	donations, err := store.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, donations, n)
}

func TestTotalsAcrossProjects(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p1 := seedProject(store)
	p2 := &models.Project{Name: "Abim Reforestation Project", IsOpenForDonations: true}
	store.SeedProject(p2)

	require.NoError(t, store.Record(ctx, &models.Donation{ProjectID: p1.ID, Amount: 100, Name: "A"}))
	require.NoError(t, store.Record(ctx, &models.Donation{ProjectID: p2.ID, Amount: 40.5, Name: "B"}))

	sum, count, err := store.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 140.5, sum)
	assert.Equal(t, 2, count)
}
