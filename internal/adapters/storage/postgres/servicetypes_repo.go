package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dog-boarding-api/internal/domain/servicetypes"
)

type ServiceTypesRepo struct {
	db *sql.DB
}

func NewServiceTypesRepo(db *sql.DB) *ServiceTypesRepo {
	return &ServiceTypesRepo{db: db}
}

func (r *ServiceTypesRepo) Create(ctx context.Context, st servicetypes.ServiceType) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO service_types (
			id, name, description, base_price
		) VALUES ($1,$2,$3,$4)
	`,
		st.ID,
		st.Name,
		st.Description,
		toNullFloat(st.BasePrice),
	)
	if isUniqueViolation(err, "service_types_name_key") {
		return servicetypes.ErrNameInUse
	}
	return err
}

func (r *ServiceTypesRepo) Update(ctx context.Context, st servicetypes.ServiceType) error {
	res, err := q(ctx, r.db).ExecContext(ctx, `
		UPDATE service_types
		SET
			name = $2,
			description = $3,
			base_price = $4
		WHERE id = $1
	`,
		st.ID,
		st.Name,
		st.Description,
		toNullFloat(st.BasePrice),
	)
	if isUniqueViolation(err, "service_types_name_key") {
		return servicetypes.ErrNameInUse
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return servicetypes.ErrNotFound
	}
	return nil
}

func (r *ServiceTypesRepo) GetByID(ctx context.Context, id string) (servicetypes.ServiceType, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return servicetypes.ServiceType{}, servicetypes.ErrNotFound
	}

	row := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, name, description, base_price
		FROM service_types
		WHERE id = $1
	`, id)

	var st servicetypes.ServiceType
	var price sql.NullFloat64
	if err := row.Scan(&st.ID, &st.Name, &st.Description, &price); err != nil {
		if err == sql.ErrNoRows {
			return servicetypes.ServiceType{}, servicetypes.ErrNotFound
		}
		return servicetypes.ServiceType{}, err
	}

	st.BasePrice = fromNullFloat(price)
	return st, nil
}

func (r *ServiceTypesRepo) List(ctx context.Context) ([]servicetypes.ServiceType, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, `
		SELECT id, name, description, base_price
		FROM service_types
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]servicetypes.ServiceType, 0)
	for rows.Next() {
		var st servicetypes.ServiceType
		var price sql.NullFloat64
		if err := rows.Scan(&st.ID, &st.Name, &st.Description, &price); err != nil {
			return nil, err
		}
		st.BasePrice = fromNullFloat(price)
		out = append(out, st)
	}

	return out, rows.Err()
}

func (r *ServiceTypesRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return servicetypes.ErrNotFound
	}

	res, err := q(ctx, r.db).ExecContext(ctx, `
		DELETE FROM service_types
		WHERE id = $1
	`, id)
	// services referencian el catálogo con ON DELETE RESTRICT
	if isFKViolation(err, "") {
		return servicetypes.ErrInUse
	}
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return servicetypes.ErrNotFound
	}
	return nil
}
