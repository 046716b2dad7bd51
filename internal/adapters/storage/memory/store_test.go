package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dog-boarding-api/internal/adapters/storage/memory"
	"dog-boarding-api/internal/domain/dogs"
	"dog-boarding-api/internal/domain/healths"
	"dog-boarding-api/internal/domain/owners"
	"dog-boarding-api/internal/domain/servicerecords"
	"dog-boarding-api/internal/domain/servicetypes"
	"dog-boarding-api/internal/domain/stays"

	"github.com/stretchr/testify/require"
)

func tsp(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Owners().Create(ctx, owners.Owner{ID: "owner-1", Name: "Ana", CPF: "111"}))
	require.NoError(t, store.Dogs().Create(ctx, dogs.Dog{ID: "dog-1", OwnerID: "owner-1", Name: "Thor", Active: true}))
	require.NoError(t, store.Healths().Create(ctx, healths.Health{ID: "health-1", DogID: "dog-1"}))
	require.NoError(t, store.ServiceTypes().Create(ctx, servicetypes.ServiceType{ID: "type-1", Name: "Bath"}))
	require.NoError(t, store.Stays().Create(ctx, stays.Stay{ID: "stay-1", DogID: "dog-1", OwnerID: "owner-1"}))

	stayID := "stay-1"
	require.NoError(t, store.ServiceRecords().Create(ctx, servicerecords.ServiceRecord{
		ID:            "svc-1",
		DogID:         "dog-1",
		OwnerID:       "owner-1",
		ServiceTypeID: "type-1",
		StayID:        &stayID,
		Price:         5.0,
	}))
}

func TestDelete_ProtectsReferencedRows(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	ctx := context.Background()

	require.ErrorIs(t, store.Owners().Delete(ctx, "owner-1"), owners.ErrInUse)
	require.ErrorIs(t, store.Dogs().Delete(ctx, "dog-1"), dogs.ErrInUse)
	require.ErrorIs(t, store.ServiceTypes().Delete(ctx, "type-1"), servicetypes.ErrInUse)
}

func TestDelete_StaySetsRecordStayIDNull(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	ctx := context.Background()

	require.NoError(t, store.Stays().Delete(ctx, "stay-1"))

	sr, err := store.ServiceRecords().GetByID(ctx, "svc-1")
	require.NoError(t, err)
	require.Nil(t, sr.StayID)
}

func TestDelete_DogCascadesHealth(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	ctx := context.Background()

	// Sin stays ni services el dog se deja borrar, arrastrando su ficha
	require.NoError(t, store.ServiceRecords().Delete(ctx, "svc-1"))
	require.NoError(t, store.Stays().Delete(ctx, "stay-1"))
	require.NoError(t, store.Dogs().Delete(ctx, "dog-1"))

	_, err := store.Healths().GetByID(ctx, "health-1")
	require.ErrorIs(t, err, healths.ErrNotFound)
}

func TestCreate_EnforcesUniqueness(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	ctx := context.Background()

	err := store.Owners().Create(ctx, owners.Owner{ID: "owner-2", Name: "Copy", CPF: "111"})
	require.ErrorIs(t, err, owners.ErrCPFInUse)

	// nombre de tipo sin distinguir mayúsculas, como el índice del schema
	err = store.ServiceTypes().Create(ctx, servicetypes.ServiceType{ID: "type-2", Name: "bath"})
	require.ErrorIs(t, err, servicetypes.ErrNameInUse)

	// una ficha por dog
	err = store.Healths().Create(ctx, healths.Health{ID: "health-2", DogID: "dog-1"})
	require.ErrorIs(t, err, healths.ErrAlreadyExists)
}

func TestCreate_ChecksForeignKeys(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	err := store.Dogs().Create(ctx, dogs.Dog{ID: "dog-x", OwnerID: "ghost", Name: "X"})
	require.ErrorIs(t, err, dogs.ErrOwnerNotFound)

	err = store.Healths().Create(ctx, healths.Health{ID: "health-x", DogID: "ghost"})
	require.ErrorIs(t, err, healths.ErrDogNotFound)

	err = store.Stays().Create(ctx, stays.Stay{ID: "stay-x", DogID: "ghost"})
	require.ErrorIs(t, err, stays.ErrDogNotFound)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.WithinTx(ctx, func(ctx context.Context) error {
		if err := store.Owners().Create(ctx, owners.Owner{ID: "owner-2", Name: "Temp"}); err != nil {
			return err
		}
		if err := store.Dogs().Create(ctx, dogs.Dog{ID: "dog-2", OwnerID: "owner-2", Name: "Temp"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = store.Owners().GetByID(ctx, "owner-2")
	require.ErrorIs(t, err, owners.ErrNotFound)
	_, err = store.Dogs().GetByID(ctx, "dog-2")
	require.ErrorIs(t, err, dogs.ErrNotFound)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context) error {
		return store.Owners().Create(ctx, owners.Owner{ID: "owner-1", Name: "Ana"})
	})
	require.NoError(t, err)

	o, err := store.Owners().GetByID(ctx, "owner-1")
	require.NoError(t, err)
	require.Equal(t, "Ana", o.Name)
}

func TestList_FiltersAndSearches(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	ctx := context.Background()

	day := tsp("2026-05-01T00:00:00Z")
	require.NoError(t, store.ServiceRecords().Create(ctx, servicerecords.ServiceRecord{
		ID:            "svc-2",
		DogID:         "dog-1",
		OwnerID:       "owner-1",
		ServiceTypeID: "type-1",
		Day:           day,
		Notes:         "nail trim",
	}))

	// q matchea por notes
	items, err := store.ServiceRecords().List(ctx, servicerecords.ListFilter{Query: "nail"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "svc-2", items[0].ID)

	// q matchea por nombre del dog
	items, err = store.ServiceRecords().List(ctx, servicerecords.ListFilter{Query: "thor"})
	require.NoError(t, err)
	require.Len(t, items, 2)

	// filtro por día calendario
	items, err = store.ServiceRecords().List(ctx, servicerecords.ListFilter{Day: day})
	require.NoError(t, err)
	require.Len(t, items, 1)

	// suma por stay
	sum, err := store.ServiceRecords().SumByStay(ctx, "stay-1")
	require.NoError(t, err)
	require.Equal(t, 5.0, sum)
}
