package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dog-boarding-api/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO owners (
			id, name, phone, email, cpf,
			address, district, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		o.ID,
		o.Name,
		o.Phone,
		o.Email,
		o.CPF,
		o.Address,
		o.District,
		o.CreatedAt,
	)
	if isUniqueViolation(err, "owners_cpf_key") {
		return owners.ErrCPFInUse
	}
	return err
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	res, err := q(ctx, r.db).ExecContext(ctx, `
		UPDATE owners
		SET
			name = $2,
			phone = $3,
			email = $4,
			cpf = $5,
			address = $6,
			district = $7
		WHERE id = $1
	`,
		o.ID,
		o.Name,
		o.Phone,
		o.Email,
		o.CPF,
		o.Address,
		o.District,
	)
	if isUniqueViolation(err, "owners_cpf_key") {
		return owners.ErrCPFInUse
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return owners.Owner{}, owners.ErrNotFound
	}

	row := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT
			id, name, phone, email, cpf,
			address, district, created_at
		FROM owners
		WHERE id = $1
	`, id)

	var o owners.Owner
	if err := row.Scan(
		&o.ID,
		&o.Name,
		&o.Phone,
		&o.Email,
		&o.CPF,
		&o.Address,
		&o.District,
		&o.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}

	return o, nil
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, `
		SELECT
			id, name, phone, email, cpf,
			address, district, created_at
		FROM owners
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		var o owners.Owner
		if err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.Phone,
			&o.Email,
			&o.CPF,
			&o.Address,
			&o.District,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	return out, rows.Err()
}

func (r *OwnersRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return owners.ErrNotFound
	}

	res, err := q(ctx, r.db).ExecContext(ctx, `
		DELETE FROM owners
		WHERE id = $1
	`, id)
	// dogs, stays y services referencian owners con ON DELETE RESTRICT
	if isFKViolation(err, "") {
		return owners.ErrInUse
	}
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}
