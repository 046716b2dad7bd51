package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dog-boarding-api/internal/domain/dogs"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO dogs (
			id, owner_id,
			name, age, birth_date, gender, size, breed, instagram,
			active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		d.ID,
		d.OwnerID,
		d.Name,
		toNullInt(d.Age),
		toNullTime(d.BirthDate),
		string(d.Gender),
		string(d.Size),
		d.Breed,
		d.Instagram,
		d.Active,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if isFKViolation(err, "dogs_owner_id_fkey") {
		return dogs.ErrOwnerNotFound
	}
	return err
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	res, err := q(ctx, r.db).ExecContext(ctx, `
		UPDATE dogs
		SET
			owner_id = $2,
			name = $3,
			age = $4,
			birth_date = $5,
			gender = $6,
			size = $7,
			breed = $8,
			instagram = $9,
			active = $10,
			updated_at = $11
		WHERE id = $1
	`,
		d.ID,
		d.OwnerID,
		d.Name,
		toNullInt(d.Age),
		toNullTime(d.BirthDate),
		string(d.Gender),
		string(d.Size),
		d.Breed,
		d.Instagram,
		d.Active,
		d.UpdatedAt,
	)
	if isFKViolation(err, "dogs_owner_id_fkey") {
		return dogs.ErrOwnerNotFound
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dogs.Dog{}, dogs.ErrNotFound
	}

	row := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT
			id, owner_id,
			name, age, birth_date, gender, size, breed, instagram,
			active, created_at, updated_at
		FROM dogs
		WHERE id = $1
	`, id)

	d, err := scanDog(row)
	if err == sql.ErrNoRows {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, err
}

func (r *DogsRepo) List(ctx context.Context, filter dogs.ListFilter) ([]dogs.Dog, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, owner_id,
			name, age, birth_date, gender, size, breed, instagram,
			active, created_at, updated_at
		FROM dogs
		WHERE 1=1
	`)

	args := []any{}

	if filter.OwnerID != "" {
		sb.WriteString(" AND owner_id = $1")
		args = append(args, filter.OwnerID)
	}
	if !filter.IncludeInactive {
		sb.WriteString(" AND active")
	}

	sb.WriteString(" ORDER BY created_at ASC")

	rows, err := q(ctx, r.db).QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

func (r *DogsRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return dogs.ErrNotFound
	}

	// la ficha de health cascadea; stays y services restringen
	res, err := q(ctx, r.db).ExecContext(ctx, `
		DELETE FROM dogs
		WHERE id = $1
	`, id)
	if isFKViolation(err, "") {
		return dogs.ErrInUse
	}
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDog(row rowScanner) (dogs.Dog, error) {
	var d dogs.Dog
	var age sql.NullInt64
	var bd sql.NullTime
	var gender, size string

	if err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.Name,
		&age,
		&bd,
		&gender,
		&size,
		&d.Breed,
		&d.Instagram,
		&d.Active,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return dogs.Dog{}, err
	}

	d.Age = fromNullInt(age)
	d.BirthDate = fromNullTime(bd)
	d.Gender = dogs.Gender(gender)
	d.Size = dogs.Size(size)
	return d, nil
}
