package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trinhvq/gigmarket-be/internal/api/model"
)

// BestProfession returns the contractor profession that earned the most from
// jobs paid within [start, end], or nil when no jobs were paid in the window.
// Ties break on profession name so the result is deterministic.
func (s *Storage) BestProfession(ctx context.Context, start, end time.Time) (*model.ProfessionEarnings, error) {
	query := `
		SELECT p.profession, SUM(j.price) AS earned
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.contractor_id
		WHERE j.paid AND j.payment_date BETWEEN $1 AND $2
		GROUP BY p.profession
		ORDER BY earned DESC, p.profession ASC
		LIMIT 1
	`

	var top model.ProfessionEarnings
	err := s.db.GetContext(ctx, &top, query, start, end)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compute best profession: %w", err)
	}

	return &top, nil
}

// BestClients returns up to limit clients ranked by the sum of job prices
// they paid within [start, end].
func (s *Storage) BestClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientSpend, error) {
	query := `
		SELECT p.id, p.first_name || ' ' || p.last_name AS full_name, SUM(j.price) AS paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.client_id
		WHERE j.paid AND j.payment_date BETWEEN $1 AND $2
		GROUP BY p.id, p.first_name, p.last_name
		ORDER BY paid DESC, p.id ASC
		LIMIT $3
	`

	var clients []model.ClientSpend
	err := s.db.SelectContext(ctx, &clients, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute best clients: %w", err)
	}

	return clients, nil
}
