package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrClinicNotFound = errors.New("clinic not found")

type Clinic struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ClinicRepository consulta clínicas e a relação usuário → clínica
type ClinicRepository struct {
	DB *sql.DB
}

func NewClinicRepository(db *sql.DB) *ClinicRepository {
	return &ClinicRepository{DB: db}
}

// IsMember verifica se o usuário (Firebase UID) faz parte da equipe da clínica
func (r *ClinicRepository) IsMember(ctx context.Context, userFirebaseUID string, clinicID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM clinic_members cm
			JOIN users u ON cm.user_id = u.id
			WHERE u.firebase_uid = $1 AND cm.clinic_id = $2
		)
	`, userFirebaseUID, clinicID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("falha ao checar se usuário é membro da clínica: %w", err)
	}
	return exists, nil
}

// GetClinic busca o nome da clínica usado nos registros de histórico
func (r *ClinicRepository) GetClinic(ctx context.Context, clinicID string) (*Clinic, error) {
	var clinic Clinic
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM clinics
		WHERE id = $1
	`, clinicID).Scan(&clinic.ID, &clinic.Name, &clinic.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClinicNotFound
		}
		return nil, fmt.Errorf("failed to fetch clinic: %w", err)
	}
	return &clinic, nil
}
