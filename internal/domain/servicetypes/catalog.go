package servicetypes

import "context"

// BasePriceOf expone el precio base de un tipo de servicio.
// Lo usa servicerecords para el default de precio sin importar este módulo.
func (s *Service) BasePriceOf(ctx context.Context, id string) (*float64, error) {
	st, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return st.BasePrice, nil
}

// NameOf expone el nombre (para el timeline).
func (s *Service) NameOf(ctx context.Context, id string) (string, error) {
	st, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return st.Name, nil
}
