package stays

import "context"

// DogOf expone el dogID de un stay.
// Lo usa servicerecords para validar que el stay pertenezca al mismo dog.
func (s *Service) DogOf(ctx context.Context, stayID string) (string, error) {
	st, err := s.GetByID(ctx, stayID)
	if err != nil {
		return "", err
	}
	return st.DogID, nil
}
