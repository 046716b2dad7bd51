package owners

import (
	"context"

	"dog-boarding-api/internal/domain/dogs"
)

// Info implementa dogs.OwnerSource.
// Existe para evitar ciclos de imports entre módulos (dogs no importa owners).
func (s *Service) Info(ctx context.Context, id string) (dogs.OwnerInfo, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return dogs.OwnerInfo{}, err
	}
	return dogs.OwnerInfo{
		ID:       o.ID,
		Name:     o.Name,
		Phone:    o.Phone,
		Email:    o.Email,
		CPF:      o.CPF,
		Address:  o.Address,
		District: o.District,
	}, nil
}
