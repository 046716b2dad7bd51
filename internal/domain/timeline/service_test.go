package timeline_test

import (
	"context"
	"testing"
	"time"

	"dog-boarding-api/internal/domain/servicerecords"
	"dog-boarding-api/internal/domain/stays"
	"dog-boarding-api/internal/domain/timeline"

	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMerge_SortsDescendingByEffectiveTimestamp(t *testing.T) {
	checkIn := ts("2026-02-10T10:00:00Z")
	performed := ts("2026-02-11T09:00:00Z")
	day := ts("2026-02-09T00:00:00Z")

	stayItems := []stays.Stay{
		{ID: "stay-1", CheckIn: &checkIn, CreatedAt: ts("2026-02-01T00:00:00Z")},
	}
	serviceItems := []servicerecords.ServiceRecord{
		{ID: "svc-performed", ServiceTypeID: "type-1", PerformedAt: &performed},
		{ID: "svc-day", ServiceTypeID: "type-1", Day: &day},
	}

	entries := timeline.Merge(stayItems, serviceItems, map[string]string{"type-1": "Walk"})

	require.Len(t, entries, 3)
	require.Equal(t, timeline.KindService, entries[0].Kind)
	require.Equal(t, "svc-performed", entries[0].ServiceID)
	require.Equal(t, "Walk", entries[0].ServiceType)
	require.Equal(t, timeline.KindStay, entries[1].Kind)
	require.Equal(t, "stay-1", entries[1].StayID)
	require.Equal(t, timeline.KindService, entries[2].Kind)
	require.Equal(t, "svc-day", entries[2].ServiceID)
}

func TestMerge_FallsBackToCreatedAt(t *testing.T) {
	// Stay sin check_in y service con day: ambos ordenan por su fallback.
	stayItems := []stays.Stay{
		{ID: "stay-open", CreatedAt: ts("2026-03-05T12:00:00Z")},
	}
	day := ts("2026-03-04T00:00:00Z")
	serviceItems := []servicerecords.ServiceRecord{
		{ID: "svc-1", Day: &day, CreatedAt: ts("2026-03-06T12:00:00Z")},
	}

	entries := timeline.Merge(stayItems, serviceItems, nil)

	require.Len(t, entries, 2)
	// El stay usa created_at (3/5); el service usa day (3/4), no created_at.
	require.Equal(t, "stay-open", entries[0].StayID)
	require.Equal(t, "svc-1", entries[1].ServiceID)
}

type dogCheckerStub struct{ exists bool }

func (d dogCheckerStub) Exists(context.Context, string) (bool, error) { return d.exists, nil }

type emptyStays struct{}

func (emptyStays) ListByDog(context.Context, string) ([]stays.Stay, error) { return nil, nil }

type emptyServices struct{}

func (emptyServices) ListByDog(context.Context, string) ([]servicerecords.ServiceRecord, error) {
	return nil, nil
}

type noNames struct{}

func (noNames) NameOf(context.Context, string) (string, error) { return "", nil }

func TestForDog_UnknownDog(t *testing.T) {
	svc := timeline.NewService(dogCheckerStub{exists: false}, emptyStays{}, emptyServices{}, noNames{})

	_, err := svc.ForDog(context.Background(), "nope")
	require.ErrorIs(t, err, timeline.ErrDogNotFound)
}

func TestForDog_EmptyHistory(t *testing.T) {
	svc := timeline.NewService(dogCheckerStub{exists: true}, emptyStays{}, emptyServices{}, noNames{})

	entries, err := svc.ForDog(context.Background(), "dog-1")
	require.NoError(t, err)
	require.Empty(t, entries)
}
