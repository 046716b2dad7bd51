package onboarding_test

import (
	"context"
	"testing"

	"dog-boarding-api/internal/adapters/storage/memory"
	"dog-boarding-api/internal/domain/dogs"
	"dog-boarding-api/internal/domain/healths"
	"dog-boarding-api/internal/domain/onboarding"
	"dog-boarding-api/internal/domain/owners"

	"github.com/stretchr/testify/require"
)

func newOnboarding(store *memory.Store) (*onboarding.Service, *owners.Service, *dogs.Service) {
	ownersSvc := owners.NewService(store.Owners())
	dogsSvc := dogs.NewService(store.Dogs(), ownersSvc)
	healthsSvc := healths.NewService(store.Healths(), dogsSvc)
	return onboarding.NewService(store, ownersSvc, dogsSvc, healthsSvc), ownersSvc, dogsSvc
}

func TestOnboard_CreatesOwnerDogAndHealth(t *testing.T) {
	store := memory.NewStore()
	svc, _, dogsSvc := newOnboarding(store)

	res, err := svc.Onboard(context.Background(), onboarding.Request{
		Name:  "Ana Souza",
		Phone: "+55 11 99999-0001",
		CPF:   "111.222.333-44",
		Dog: onboarding.DogRequest{
			Name:   "Thor",
			Gender: "male",
			Size:   "large",
		},
		Health: onboarding.HealthRequest{
			Castrated: true,
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Owner.ID)
	require.Equal(t, res.Owner.ID, res.Dog.OwnerID)
	require.NotNil(t, res.Health)
	require.Equal(t, res.Dog.ID, res.Health.DogID)
	require.True(t, res.Health.Castrated)

	// El dog quedó visible fuera de la transacción
	ds, err := dogsSvc.ListByOwner(context.Background(), res.Owner.ID)
	require.NoError(t, err)
	require.Len(t, ds, 1)
}

func TestOnboard_DuplicateCPFLeavesNothingBehind(t *testing.T) {
	store := memory.NewStore()
	svc, ownersSvc, _ := newOnboarding(store)

	_, err := ownersSvc.Create(context.Background(), owners.CreateInput{
		Name:  "Diego Alves",
		Phone: "+55 11 99999-0004",
		CPF:   "999.888.777-66",
	})
	require.NoError(t, err)

	_, err = svc.Onboard(context.Background(), onboarding.Request{
		Name:  "Impostor",
		Phone: "+55 11 99999-0005",
		CPF:   "999.888.777-66",
		Dog: onboarding.DogRequest{
			Name:   "Ghost",
			Gender: "male",
			Size:   "small",
		},
	})
	require.ErrorIs(t, err, owners.ErrCPFInUse)

	// Rollback completo: sigue habiendo un solo owner y ningún dog
	os, err := ownersSvc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, os, 1)

	ds, err := store.Dogs().List(context.Background(), dogs.ListFilter{IncludeInactive: true})
	require.NoError(t, err)
	require.Empty(t, ds)
}

func TestOnboard_InvalidDogRollsBackOwner(t *testing.T) {
	store := memory.NewStore()
	svc, ownersSvc, _ := newOnboarding(store)

	_, err := svc.Onboard(context.Background(), onboarding.Request{
		Name:  "Carla Dias",
		Phone: "+55 11 99999-0003",
		Dog: onboarding.DogRequest{
			Name:   "Rex",
			Gender: "robot", // inválido
			Size:   "medium",
		},
	})
	require.ErrorIs(t, err, dogs.ErrInvalidInput)

	os, err := ownersSvc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, os)
}
