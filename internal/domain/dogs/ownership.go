package dogs

import "context"

// OwnerOf expone el ownerID de un dog.
// Lo usan stays y servicerecords para derivar el owner sin importar este módulo.
func (s *Service) OwnerOf(ctx context.Context, dogID string) (string, error) {
	d, err := s.GetByID(ctx, dogID)
	if err != nil {
		return "", err
	}
	return d.OwnerID, nil
}

// Exists expone existencia de un dog (healths, timeline).
func (s *Service) Exists(ctx context.Context, dogID string) (bool, error) {
	_, err := s.GetByID(ctx, dogID)
	if err == nil {
		return true, nil
	}
	if err == ErrNotFound {
		return false, nil
	}
	return false, err
}
