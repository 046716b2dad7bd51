package memory

import (
	"context"
	"sync"

	"dog-boarding-api/internal/domain/dogs"
	"dog-boarding-api/internal/domain/healths"
	"dog-boarding-api/internal/domain/owners"
	"dog-boarding-api/internal/domain/servicerecords"
	"dog-boarding-api/internal/domain/servicetypes"
	"dog-boarding-api/internal/domain/stays"
)

// Store es el storage in-memory completo (dev y tests).
// Es un único struct con todas las "tablas" para poder aplicar la misma
// política referencial que el schema de Postgres (protect/cascade/set null)
// y las unicidades de cpf y nombre de tipo de servicio.
type Store struct {
	mu sync.RWMutex

	// txMu serializa transacciones (una a la vez alcanza para dev).
	txMu sync.Mutex

	owners       map[string]owners.Owner
	dogs         map[string]dogs.Dog
	healths      map[string]healths.Health
	serviceTypes map[string]servicetypes.ServiceType
	stays        map[string]stays.Stay
	records      map[string]servicerecords.ServiceRecord
}

func NewStore() *Store {
	return &Store{
		owners:       make(map[string]owners.Owner),
		dogs:         make(map[string]dogs.Dog),
		healths:      make(map[string]healths.Health),
		serviceTypes: make(map[string]servicetypes.ServiceType),
		stays:        make(map[string]stays.Stay),
		records:      make(map[string]servicerecords.ServiceRecord),
	}
}

func (s *Store) Owners() owners.Repository                 { return &ownersRepo{s} }
func (s *Store) Dogs() dogs.Repository                     { return &dogsRepo{s} }
func (s *Store) Healths() healths.Repository               { return &healthsRepo{s} }
func (s *Store) ServiceTypes() servicetypes.Repository     { return &serviceTypesRepo{s} }
func (s *Store) Stays() stays.Repository                   { return &staysRepo{s} }
func (s *Store) ServiceRecords() servicerecords.Repository { return &serviceRecordsRepo{s} }

// WithinTx implementa onboarding.TxRunner: snapshotea las tablas y,
// si fn falla, las restaura. Los repos nunca mutan structs in place
// (siempre reemplazan la entrada del map), así que la copia shallow
// de los maps alcanza como snapshot.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapOwners := copyMap(s.owners)
	snapDogs := copyMap(s.dogs)
	snapHealths := copyMap(s.healths)
	snapTypes := copyMap(s.serviceTypes)
	snapStays := copyMap(s.stays)
	snapRecords := copyMap(s.records)
	s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.owners = snapOwners
		s.dogs = snapDogs
		s.healths = snapHealths
		s.serviceTypes = snapTypes
		s.stays = snapStays
		s.records = snapRecords
		s.mu.Unlock()
		return err
	}
	return nil
}

func copyMap[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
