package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dog-boarding-api/internal/domain/healths"
)

type HealthsRepo struct {
	db *sql.DB
}

func NewHealthsRepo(db *sql.DB) *HealthsRepo {
	return &HealthsRepo{db: db}
}

func (r *HealthsRepo) Create(ctx context.Context, h healths.Health) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO healths (
			id, dog_id,
			has_vet, vet_name, vet_phone,
			castrated, in_heat,
			chronic_disease, disease_description,
			allergies, special_recommendations
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		h.ID,
		h.DogID,
		h.HasVet,
		h.VetName,
		h.VetPhone,
		h.Castrated,
		h.InHeat,
		h.ChronicDisease,
		h.DiseaseDescription,
		h.Allergies,
		h.SpecialRecommendations,
	)
	if isFKViolation(err, "healths_dog_id_fkey") {
		return healths.ErrDogNotFound
	}
	if isUniqueViolation(err, "healths_dog_id_key") {
		return healths.ErrAlreadyExists
	}
	return err
}

func (r *HealthsRepo) Update(ctx context.Context, h healths.Health) error {
	res, err := q(ctx, r.db).ExecContext(ctx, `
		UPDATE healths
		SET
			has_vet = $2,
			vet_name = $3,
			vet_phone = $4,
			castrated = $5,
			in_heat = $6,
			chronic_disease = $7,
			disease_description = $8,
			allergies = $9,
			special_recommendations = $10
		WHERE id = $1
	`,
		h.ID,
		h.HasVet,
		h.VetName,
		h.VetPhone,
		h.Castrated,
		h.InHeat,
		h.ChronicDisease,
		h.DiseaseDescription,
		h.Allergies,
		h.SpecialRecommendations,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return healths.ErrNotFound
	}
	return nil
}

func (r *HealthsRepo) GetByID(ctx context.Context, id string) (healths.Health, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return healths.Health{}, healths.ErrNotFound
	}
	return r.getBy(ctx, "id", id)
}

func (r *HealthsRepo) GetByDog(ctx context.Context, dogID string) (healths.Health, error) {
	dogID = strings.TrimSpace(dogID)
	if dogID == "" {
		return healths.Health{}, healths.ErrNotFound
	}
	return r.getBy(ctx, "dog_id", dogID)
}

func (r *HealthsRepo) getBy(ctx context.Context, column, value string) (healths.Health, error) {
	row := q(ctx, r.db).QueryRowContext(ctx, `
		SELECT
			id, dog_id,
			has_vet, vet_name, vet_phone,
			castrated, in_heat,
			chronic_disease, disease_description,
			allergies, special_recommendations
		FROM healths
		WHERE `+column+` = $1
	`, value)

	var h healths.Health
	if err := row.Scan(
		&h.ID,
		&h.DogID,
		&h.HasVet,
		&h.VetName,
		&h.VetPhone,
		&h.Castrated,
		&h.InHeat,
		&h.ChronicDisease,
		&h.DiseaseDescription,
		&h.Allergies,
		&h.SpecialRecommendations,
	); err != nil {
		if err == sql.ErrNoRows {
			return healths.Health{}, healths.ErrNotFound
		}
		return healths.Health{}, err
	}

	return h, nil
}

func (r *HealthsRepo) List(ctx context.Context) ([]healths.Health, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, `
		SELECT
			id, dog_id,
			has_vet, vet_name, vet_phone,
			castrated, in_heat,
			chronic_disease, disease_description,
			allergies, special_recommendations
		FROM healths
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]healths.Health, 0)
	for rows.Next() {
		var h healths.Health
		if err := rows.Scan(
			&h.ID,
			&h.DogID,
			&h.HasVet,
			&h.VetName,
			&h.VetPhone,
			&h.Castrated,
			&h.InHeat,
			&h.ChronicDisease,
			&h.DiseaseDescription,
			&h.Allergies,
			&h.SpecialRecommendations,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}

	return out, rows.Err()
}

func (r *HealthsRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return healths.ErrNotFound
	}

	res, err := q(ctx, r.db).ExecContext(ctx, `
		DELETE FROM healths
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return healths.ErrNotFound
	}
	return nil
}
