package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dog-boarding-api/internal/domain/stays"
)

type StaysRepo struct {
	db *sql.DB
}

func NewStaysRepo(db *sql.DB) *StaysRepo {
	return &StaysRepo{db: db}
}

func (r *StaysRepo) Create(ctx context.Context, st stays.Stay) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO stays (
			id, dog_id, owner_id,
			check_in, check_out,
			notes, price_total,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		st.ID,
		st.DogID,
		st.OwnerID,
		toNullTime(st.CheckIn),
		toNullTime(st.CheckOut),
		st.Notes,
		st.PriceTotal,
		st.CreatedAt,
	)
	if isFKViolation(err, "stays_dog_id_fkey") {
		return stays.ErrDogNotFound
	}
	return err
}

func (r *StaysRepo) Update(ctx context.Context, st stays.Stay) error {
	res, err := q(ctx, r.db).ExecContext(ctx, `
		UPDATE stays
		SET
			check_in = $2,
			check_out = $3,
			notes = $4,
			price_total = $5
		WHERE id = $1
	`,
		st.ID,
		toNullTime(st.CheckIn),
		toNullTime(st.CheckOut),
		st.Notes,
		st.PriceTotal,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return stays.ErrNotFound
	}
	return nil
}

func (r *StaysRepo) GetByID(ctx context.Context, id string) (stays.Stay, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return stays.Stay{}, stays.ErrNotFound
	}

	row := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT
			id, dog_id, owner_id,
			check_in, check_out,
			notes, price_total,
			created_at
		FROM stays
		WHERE id = $1
	`, id)

	st, err := scanStay(row)
	if err == sql.ErrNoRows {
		return stays.Stay{}, stays.ErrNotFound
	}
	return st, err
}

func (r *StaysRepo) List(ctx context.Context, filter stays.ListFilter) ([]stays.Stay, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, dog_id, owner_id,
			check_in, check_out,
			notes, price_total,
			created_at
		FROM stays
		WHERE 1=1
	`)

	args := []any{}
	argN := 1

	if filter.DogID != "" {
		sb.WriteString(fmt.Sprintf(" AND dog_id = $%d", argN))
		args = append(args, filter.DogID)
		argN++
	}
	if filter.OwnerID != "" {
		sb.WriteString(fmt.Sprintf(" AND owner_id = $%d", argN))
		args = append(args, filter.OwnerID)
		argN++
	}

	sb.WriteString(" ORDER BY " + stayOrderClause(filter.OrderBy))

	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	}

	rows, err := q(ctx, r.db).QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]stays.Stay, 0)
	for rows.Next() {
		st, err := scanStay(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}

	return out, rows.Err()
}

func (r *StaysRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return stays.ErrNotFound
	}

	// service_records.stay_id cascadea a NULL (historial sin el stay)
	res, err := q(ctx, r.db).ExecContext(ctx, `
		DELETE FROM stays
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return stays.ErrNotFound
	}
	return nil
}

// stayOrderClause traduce filter.OrderBy a un ORDER BY saneado.
// Los check_in/check_out NULL se comportan como el tiempo cero:
// primero en ascendente, último en descendente.
func stayOrderClause(orderBy string) string {
	desc := strings.HasPrefix(orderBy, "-")
	field := strings.TrimPrefix(orderBy, "-")

	col := "created_at"
	switch field {
	case "check_in":
		col = "check_in"
	case "check_out":
		col = "check_out"
	}

	if desc {
		return col + " DESC NULLS LAST"
	}
	return col + " ASC NULLS FIRST"
}

func scanStay(row rowScanner) (stays.Stay, error) {
	var st stays.Stay
	var in, out sql.NullTime

	if err := row.Scan(
		&st.ID,
		&st.DogID,
		&st.OwnerID,
		&in,
		&out,
		&st.Notes,
		&st.PriceTotal,
		&st.CreatedAt,
	); err != nil {
		return stays.Stay{}, err
	}

	st.CheckIn = fromNullTime(in)
	st.CheckOut = fromNullTime(out)
	return st, nil
}
