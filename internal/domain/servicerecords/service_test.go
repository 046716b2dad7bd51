package servicerecords_test

import (
	"context"
	"testing"
	"time"

	"dog-boarding-api/internal/domain/servicerecords"

	"github.com/stretchr/testify/require"
)

type fakeRecordRepo struct {
	items map[string]servicerecords.ServiceRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{items: map[string]servicerecords.ServiceRecord{}}
}

func (r *fakeRecordRepo) Create(_ context.Context, sr servicerecords.ServiceRecord) error {
	r.items[sr.ID] = sr
	return nil
}

func (r *fakeRecordRepo) Update(_ context.Context, sr servicerecords.ServiceRecord) error {
	if _, ok := r.items[sr.ID]; !ok {
		return servicerecords.ErrNotFound
	}
	r.items[sr.ID] = sr
	return nil
}

func (r *fakeRecordRepo) GetByID(_ context.Context, id string) (servicerecords.ServiceRecord, error) {
	sr, ok := r.items[id]
	if !ok {
		return servicerecords.ServiceRecord{}, servicerecords.ErrNotFound
	}
	return sr, nil
}

func (r *fakeRecordRepo) List(_ context.Context, _ servicerecords.ListFilter) ([]servicerecords.ServiceRecord, error) {
	out := make([]servicerecords.ServiceRecord, 0, len(r.items))
	for _, sr := range r.items {
		out = append(out, sr)
	}
	return out, nil
}

func (r *fakeRecordRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeRecordRepo) SumByStay(_ context.Context, stayID string) (float64, error) {
	var sum float64
	for _, sr := range r.items {
		if sr.StayID != nil && *sr.StayID == stayID {
			sum += sr.Price
		}
	}
	return sum, nil
}

type dogDirStub struct{ owner string }

func (d dogDirStub) OwnerOf(context.Context, string) (string, error) { return d.owner, nil }

type stayDirStub struct {
	dog string
	err error
}

func (s stayDirStub) DogOf(context.Context, string) (string, error) { return s.dog, s.err }

type catalogStub struct{ base *float64 }

func (c catalogStub) BasePriceOf(context.Context, string) (*float64, error) { return c.base, nil }

func newSvc(repo *fakeRecordRepo, stayDog string, base *float64) *servicerecords.Service {
	return servicerecords.NewService(repo, dogDirStub{owner: "owner-1"}, stayDirStub{dog: stayDog}, catalogStub{base: base})
}

func tsp(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCreate_RequiresExactlyOneTimestamp(t *testing.T) {
	svc := newSvc(newFakeRecordRepo(), "dog-1", nil)

	// Ninguno
	_, err := svc.Create(context.Background(), servicerecords.CreateInput{
		DogID:         "dog-1",
		ServiceTypeID: "type-1",
	})
	require.ErrorIs(t, err, servicerecords.ErrEventTime)

	// Ambos
	_, err = svc.Create(context.Background(), servicerecords.CreateInput{
		DogID:         "dog-1",
		ServiceTypeID: "type-1",
		PerformedAt:   tsp("2026-01-10T10:00:00Z"),
		Day:           tsp("2026-01-10T00:00:00Z"),
	})
	require.ErrorIs(t, err, servicerecords.ErrEventTime)
}

func TestCreate_DerivesOwnerPriceAndCurrency(t *testing.T) {
	base := 40.0
	svc := newSvc(newFakeRecordRepo(), "dog-1", &base)

	sr, err := svc.Create(context.Background(), servicerecords.CreateInput{
		DogID:         "dog-1",
		ServiceTypeID: "type-1",
		Day:           tsp("2026-01-10T00:00:00Z"),
	})
	require.NoError(t, err)
	require.Equal(t, "owner-1", sr.OwnerID)
	require.Equal(t, 40.0, sr.Price)
	require.Equal(t, "BRL", sr.Currency)
}

func TestCreate_ExplicitPriceWinsOverBase(t *testing.T) {
	base := 40.0
	price := 5.0
	svc := newSvc(newFakeRecordRepo(), "dog-1", &base)

	sr, err := svc.Create(context.Background(), servicerecords.CreateInput{
		DogID:         "dog-1",
		ServiceTypeID: "type-1",
		Day:           tsp("2026-01-10T00:00:00Z"),
		Price:         &price,
		Currency:      "usd",
	})
	require.NoError(t, err)
	require.Equal(t, 5.0, sr.Price)
	require.Equal(t, "USD", sr.Currency)
}

func TestCreate_RejectsStayOfAnotherDog(t *testing.T) {
	svc := newSvc(newFakeRecordRepo(), "other-dog", nil)

	stayID := "stay-1"
	_, err := svc.Create(context.Background(), servicerecords.CreateInput{
		DogID:         "dog-1",
		ServiceTypeID: "type-1",
		StayID:        &stayID,
		Day:           tsp("2026-01-10T00:00:00Z"),
	})
	require.ErrorIs(t, err, servicerecords.ErrStayMismatch)
}

func TestUpdate_MovesDayToPerformedAt(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := newSvc(repo, "dog-1", nil)

	sr, err := svc.Create(context.Background(), servicerecords.CreateInput{
		DogID:         "dog-1",
		ServiceTypeID: "type-1",
		Day:           tsp("2026-01-10T00:00:00Z"),
	})
	require.NoError(t, err)

	// day pasa a null y performed_at toma su lugar, en el mismo update
	got, err := svc.Update(context.Background(), sr.ID, servicerecords.UpdateInput{
		PerformedAt: servicerecords.OptionalTime{Present: true, Value: tsp("2026-01-10T15:00:00Z")},
		Day:         servicerecords.OptionalTime{Present: true},
	})
	require.NoError(t, err)
	require.NotNil(t, got.PerformedAt)
	require.Nil(t, got.Day)
}

func TestUpdate_RevalidatesEventTime(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := newSvc(repo, "dog-1", nil)

	sr, err := svc.Create(context.Background(), servicerecords.CreateInput{
		DogID:         "dog-1",
		ServiceTypeID: "type-1",
		Day:           tsp("2026-01-10T00:00:00Z"),
	})
	require.NoError(t, err)

	// Dejar el record sin ninguna marca temporal no está permitido.
	_, err = svc.Update(context.Background(), sr.ID, servicerecords.UpdateInput{
		Day: servicerecords.OptionalTime{Present: true},
	})
	require.ErrorIs(t, err, servicerecords.ErrEventTime)
}

func TestUpdate_UnlinksStayWithNull(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := newSvc(repo, "dog-1", nil)

	stayID := "stay-1"
	sr, err := svc.Create(context.Background(), servicerecords.CreateInput{
		DogID:         "dog-1",
		ServiceTypeID: "type-1",
		StayID:        &stayID,
		Day:           tsp("2026-01-10T00:00:00Z"),
	})
	require.NoError(t, err)
	require.NotNil(t, sr.StayID)

	got, err := svc.Update(context.Background(), sr.ID, servicerecords.UpdateInput{
		StayID: servicerecords.OptionalString{Present: true},
	})
	require.NoError(t, err)
	require.Nil(t, got.StayID)
}

func TestUpdate_KeepsImmutableFields(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := newSvc(repo, "dog-1", nil)

	sr, err := svc.Create(context.Background(), servicerecords.CreateInput{
		DogID:         "dog-1",
		ServiceTypeID: "type-1",
		Day:           tsp("2026-01-10T00:00:00Z"),
	})
	require.NoError(t, err)

	notes := "updated"
	got, err := svc.Update(context.Background(), sr.ID, servicerecords.UpdateInput{Notes: &notes})
	require.NoError(t, err)
	require.Equal(t, sr.DogID, got.DogID)
	require.Equal(t, sr.OwnerID, got.OwnerID)
	require.Equal(t, sr.CreatedAt, got.CreatedAt)
	require.Equal(t, "updated", got.Notes)
}

func TestSortTimestamp_Fallbacks(t *testing.T) {
	performed := tsp("2026-01-10T10:00:00Z")
	day := tsp("2026-01-09T00:00:00Z")
	created := *tsp("2026-01-01T00:00:00Z")

	require.Equal(t, *performed, servicerecords.ServiceRecord{PerformedAt: performed, CreatedAt: created}.SortTimestamp())
	require.Equal(t, *day, servicerecords.ServiceRecord{Day: day, CreatedAt: created}.SortTimestamp())
	require.Equal(t, created, servicerecords.ServiceRecord{CreatedAt: created}.SortTimestamp())
}
