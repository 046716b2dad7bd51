package stays_test

import (
	"context"
	"testing"
	"time"

	"dog-boarding-api/internal/domain/stays"

	"github.com/stretchr/testify/require"
)

type fakeStayRepo struct {
	items map[string]stays.Stay
}

func newFakeStayRepo() *fakeStayRepo {
	return &fakeStayRepo{items: map[string]stays.Stay{}}
}

func (r *fakeStayRepo) Create(_ context.Context, st stays.Stay) error {
	r.items[st.ID] = st
	return nil
}

func (r *fakeStayRepo) Update(_ context.Context, st stays.Stay) error {
	if _, ok := r.items[st.ID]; !ok {
		return stays.ErrNotFound
	}
	r.items[st.ID] = st
	return nil
}

func (r *fakeStayRepo) GetByID(_ context.Context, id string) (stays.Stay, error) {
	st, ok := r.items[id]
	if !ok {
		return stays.Stay{}, stays.ErrNotFound
	}
	return st, nil
}

func (r *fakeStayRepo) List(_ context.Context, _ stays.ListFilter) ([]stays.Stay, error) {
	out := make([]stays.Stay, 0, len(r.items))
	for _, st := range r.items {
		out = append(out, st)
	}
	return out, nil
}

func (r *fakeStayRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type dogDirStub struct {
	owner string
	err   error
}

func (d dogDirStub) OwnerOf(context.Context, string) (string, error) { return d.owner, d.err }

type chargesStub struct{ sum float64 }

func (c chargesStub) SumByStay(context.Context, string) (float64, error) { return c.sum, nil }

func tsp(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCreate_RejectsInvertedPeriod(t *testing.T) {
	repo := newFakeStayRepo()
	svc := stays.NewService(repo, dogDirStub{owner: "owner-1"}, chargesStub{})

	_, err := svc.Create(context.Background(), stays.CreateInput{
		DogID:    "dog-1",
		CheckIn:  tsp("2026-01-10T10:00:00Z"),
		CheckOut: tsp("2026-01-09T10:00:00Z"),
	})
	require.ErrorIs(t, err, stays.ErrPeriodOrder)
	require.Empty(t, repo.items)
}

func TestCreate_SnapshotsOwnerFromDog(t *testing.T) {
	repo := newFakeStayRepo()
	svc := stays.NewService(repo, dogDirStub{owner: "owner-7"}, chargesStub{})

	st, err := svc.Create(context.Background(), stays.CreateInput{
		DogID:   "dog-1",
		CheckIn: tsp("2026-01-10T10:00:00Z"),
	})
	require.NoError(t, err)
	require.Equal(t, "owner-7", st.OwnerID)
	require.NotEmpty(t, st.ID)
}

func TestCreate_OpenEndedPeriodAllowed(t *testing.T) {
	repo := newFakeStayRepo()
	svc := stays.NewService(repo, dogDirStub{owner: "owner-1"}, chargesStub{})

	st, err := svc.Create(context.Background(), stays.CreateInput{DogID: "dog-1"})
	require.NoError(t, err)
	require.Nil(t, st.CheckIn)
	require.Nil(t, st.CheckOut)
}

func TestUpdate_RevalidatesMergedPeriod(t *testing.T) {
	repo := newFakeStayRepo()
	svc := stays.NewService(repo, dogDirStub{owner: "owner-1"}, chargesStub{})

	st, err := svc.Create(context.Background(), stays.CreateInput{
		DogID:   "dog-1",
		CheckIn: tsp("2026-01-10T10:00:00Z"),
	})
	require.NoError(t, err)

	// check_out nuevo contra el check_in ya guardado
	_, err = svc.Update(context.Background(), st.ID, stays.UpdateInput{
		CheckOut: tsp("2026-01-09T10:00:00Z"),
	})
	require.ErrorIs(t, err, stays.ErrPeriodOrder)
}

func TestTotal_AddsLinkedCharges(t *testing.T) {
	svc := stays.NewService(newFakeStayRepo(), dogDirStub{owner: "owner-1"}, chargesStub{sum: 7.50})

	total, err := svc.Total(context.Background(), stays.Stay{ID: "stay-1", PriceTotal: 10.0})
	require.NoError(t, err)
	require.Equal(t, 17.50, total)
}

func TestList_RejectsUnknownOrdering(t *testing.T) {
	svc := stays.NewService(newFakeStayRepo(), dogDirStub{owner: "owner-1"}, chargesStub{})

	_, err := svc.List(context.Background(), stays.ListFilter{OrderBy: "price_total"})
	require.ErrorIs(t, err, stays.ErrInvalidInput)

	_, err = svc.List(context.Background(), stays.ListFilter{OrderBy: "-check_in"})
	require.NoError(t, err)
}
