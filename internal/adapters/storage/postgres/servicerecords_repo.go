package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"dog-boarding-api/internal/domain/servicerecords"
)

type ServiceRecordsRepo struct {
	db *sql.DB
}

func NewServiceRecordsRepo(db *sql.DB) *ServiceRecordsRepo {
	return &ServiceRecordsRepo{db: db}
}

func (r *ServiceRecordsRepo) Create(ctx context.Context, sr servicerecords.ServiceRecord) error {
	meta, err := marshalMetadata(sr.Metadata)
	if err != nil {
		return err
	}

	_, err = q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO service_records (
			id, dog_id, owner_id, service_type_id, stay_id,
			performed_at, day,
			price, currency,
			metadata, notes,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		sr.ID,
		sr.DogID,
		sr.OwnerID,
		sr.ServiceTypeID,
		toNullString(sr.StayID),
		toNullTime(sr.PerformedAt),
		toNullTime(sr.Day),
		sr.Price,
		sr.Currency,
		meta,
		sr.Notes,
		sr.CreatedAt,
	)
	return mapRecordFKError(err)
}

func (r *ServiceRecordsRepo) Update(ctx context.Context, sr servicerecords.ServiceRecord) error {
	meta, err := marshalMetadata(sr.Metadata)
	if err != nil {
		return err
	}

	res, err := q(ctx, r.db).ExecContext(ctx, `
		UPDATE service_records
		SET
			service_type_id = $2,
			stay_id = $3,
			performed_at = $4,
			day = $5,
			price = $6,
			currency = $7,
			metadata = $8,
			notes = $9
		WHERE id = $1
	`,
		sr.ID,
		sr.ServiceTypeID,
		toNullString(sr.StayID),
		toNullTime(sr.PerformedAt),
		toNullTime(sr.Day),
		sr.Price,
		sr.Currency,
		meta,
		sr.Notes,
	)
	if err != nil {
		return mapRecordFKError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return servicerecords.ErrNotFound
	}
	return nil
}

func (r *ServiceRecordsRepo) GetByID(ctx context.Context, id string) (servicerecords.ServiceRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return servicerecords.ServiceRecord{}, servicerecords.ErrNotFound
	}

	row := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT
			sr.id, sr.dog_id, sr.owner_id, sr.service_type_id, sr.stay_id,
			sr.performed_at, sr.day,
			sr.price, sr.currency,
			sr.metadata, sr.notes,
			sr.created_at
		FROM service_records sr
		WHERE sr.id = $1
	`, id)

	sr, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return servicerecords.ServiceRecord{}, servicerecords.ErrNotFound
	}
	return sr, err
}

func (r *ServiceRecordsRepo) List(ctx context.Context, filter servicerecords.ListFilter) ([]servicerecords.ServiceRecord, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			sr.id, sr.dog_id, sr.owner_id, sr.service_type_id, sr.stay_id,
			sr.performed_at, sr.day,
			sr.price, sr.currency,
			sr.metadata, sr.notes,
			sr.created_at
		FROM service_records sr
	`)

	// q busca en nombre del dog, nombre del owner y notes
	query := strings.TrimSpace(filter.Query)
	if query != "" {
		sb.WriteString(`
		JOIN dogs d ON d.id = sr.dog_id
		JOIN owners o ON o.id = sr.owner_id
		`)
	}

	sb.WriteString(" WHERE 1=1")

	args := []any{}
	argN := 1

	if filter.DogID != "" {
		sb.WriteString(fmt.Sprintf(" AND sr.dog_id = $%d", argN))
		args = append(args, filter.DogID)
		argN++
	}
	if filter.OwnerID != "" {
		sb.WriteString(fmt.Sprintf(" AND sr.owner_id = $%d", argN))
		args = append(args, filter.OwnerID)
		argN++
	}
	if filter.ServiceTypeID != "" {
		sb.WriteString(fmt.Sprintf(" AND sr.service_type_id = $%d", argN))
		args = append(args, filter.ServiceTypeID)
		argN++
	}
	if filter.Day != nil {
		sb.WriteString(fmt.Sprintf(" AND sr.day = $%d", argN))
		args = append(args, *filter.Day)
		argN++
	}
	if query != "" {
		sb.WriteString(fmt.Sprintf(" AND (d.name ILIKE $%d OR o.name ILIKE $%d OR sr.notes ILIKE $%d)", argN, argN, argN))
		args = append(args, "%"+query+"%")
		argN++
	}

	sb.WriteString(" ORDER BY " + recordOrderClause(filter.OrderBy))

	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	}

	rows, err := q(ctx, r.db).QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]servicerecords.ServiceRecord, 0)
	for rows.Next() {
		sr, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sr)
	}

	return out, rows.Err()
}

func (r *ServiceRecordsRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return servicerecords.ErrNotFound
	}

	res, err := q(ctx, r.db).ExecContext(ctx, `
		DELETE FROM service_records
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return servicerecords.ErrNotFound
	}
	return nil
}

func (r *ServiceRecordsRepo) SumByStay(ctx context.Context, stayID string) (float64, error) {
	stayID = strings.TrimSpace(stayID)
	if stayID == "" {
		return 0, nil
	}

	var total float64
	err := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT COALESCE(SUM(price), 0)
		FROM service_records
		WHERE stay_id = $1
	`, stayID).Scan(&total)
	return total, err
}

// recordOrderClause traduce filter.OrderBy a un ORDER BY saneado.
// performed_at y day ordenan por la clave temporal efectiva del record,
// igual que SortTimestamp.
func recordOrderClause(orderBy string) string {
	desc := strings.HasPrefix(orderBy, "-")
	field := strings.TrimPrefix(orderBy, "-")

	col := "sr.created_at"
	switch field {
	case "price":
		col = "sr.price"
	case "performed_at", "day":
		col = "COALESCE(sr.performed_at, sr.day, sr.created_at)"
	}

	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

func mapRecordFKError(err error) error {
	switch {
	case isFKViolation(err, "service_records_dog_id_fkey"):
		return servicerecords.ErrDogNotFound
	case isFKViolation(err, "service_records_service_type_id_fkey"):
		return servicerecords.ErrServiceTypeNotFound
	case isFKViolation(err, "service_records_stay_id_fkey"):
		return servicerecords.ErrStayNotFound
	}
	return err
}

func marshalMetadata(m map[string]string) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func scanRecord(row rowScanner) (servicerecords.ServiceRecord, error) {
	var sr servicerecords.ServiceRecord
	var stayID sql.NullString
	var performedAt, day sql.NullTime
	var meta []byte

	if err := row.Scan(
		&sr.ID,
		&sr.DogID,
		&sr.OwnerID,
		&sr.ServiceTypeID,
		&stayID,
		&performedAt,
		&day,
		&sr.Price,
		&sr.Currency,
		&meta,
		&sr.Notes,
		&sr.CreatedAt,
	); err != nil {
		return servicerecords.ServiceRecord{}, err
	}

	sr.StayID = fromNullString(stayID)
	sr.PerformedAt = fromNullTime(performedAt)
	sr.Day = fromNullTime(day)

	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &sr.Metadata); err != nil {
			return servicerecords.ServiceRecord{}, err
		}
	}

	return sr, nil
}
