// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/tally-board/models"
)

// ErrNotFound is returned when an update or lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Queries runs the application's SQL against one connection pool.
type Queries struct {
	conn   *sql.DB
	driver string
}

func NewQueries(conn *sql.DB, driver string) *Queries {
	return &Queries{conn: conn, driver: driver}
}

func (q *Queries) rebind(query string) string {
	return Rebind(q.driver, query)
}

const electionColumns = `id, position, candidate_name, votes, base_votes, daily_increment,
       start_date, created_at, updated_at`

func scanElection(row interface{ Scan(...any) error }) (models.Election, error) {
	var e models.Election
	err := row.Scan(
		&e.ID, &e.Position, &e.CandidateName, &e.Votes, &e.BaseVotes,
		&e.DailyIncrement, &e.StartDate, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// ListElections returns every candidate row ordered by position.
func (q *Queries) ListElections(ctx context.Context) ([]models.Election, error) {
	rows, err := q.conn.QueryContext(ctx, `
		SELECT `+electionColumns+`
		FROM elections
		ORDER BY position, candidate_name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read elections: %w", err)
	}

	return elections, nil
}

func (q *Queries) GetElection(ctx context.Context, id string) (models.Election, error) {
	row := q.conn.QueryRowContext(ctx, q.rebind(`
		SELECT `+electionColumns+`
		FROM elections
		WHERE id = ?
	`), id)
	e, err := scanElection(row)
	if err == sql.ErrNoRows {
		return models.Election{}, ErrNotFound
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}
	return e, nil
}

// CreateElection inserts a candidate row. BaseVotes is taken from Votes.
func (q *Queries) CreateElection(ctx context.Context, e models.Election) error {
	_, err := q.conn.ExecContext(ctx, q.rebind(`
		INSERT INTO elections (id, position, candidate_name, votes, base_votes, daily_increment,
		                       start_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), e.ID, e.Position, e.CandidateName, e.Votes, e.Votes, e.DailyIncrement,
		e.StartDate.UTC(), e.CreatedAt.UTC(), e.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert election: %w", err)
	}
	return nil
}

// UpdateElection applies a back-office edit. base_votes is reset to votes.
func (q *Queries) UpdateElection(ctx context.Context, id string, u models.UpdateElectionRequest, now time.Time) error {
	res, err := q.conn.ExecContext(ctx, q.rebind(`
		UPDATE elections
		SET candidate_name = ?, votes = ?, base_votes = ?, daily_increment = ?, updated_at = ?
		WHERE id = ?
	`), u.CandidateName, u.Votes, u.Votes, u.DailyIncrement, now.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update election: %w", err)
	}
	return expectOneRow(res)
}

func (q *Queries) DeleteElection(ctx context.Context, id string) error {
	res, err := q.conn.ExecContext(ctx, q.rebind(`DELETE FROM elections WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete election: %w", err)
	}
	return expectOneRow(res)
}

// IncrementElectionVotes records one cast ballot. Both votes and base_votes
// move so the vote stays counted after accrual is recomputed.
func (q *Queries) IncrementElectionVotes(ctx context.Context, id string, now time.Time) error {
	res, err := q.conn.ExecContext(ctx, q.rebind(`
		UPDATE elections
		SET votes = votes + 1, base_votes = base_votes + 1, updated_at = ?
		WHERE id = ?
	`), now.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to increment votes: %w", err)
	}
	return expectOneRow(res)
}

// GetDonationSettings returns the settings row, or ErrNotFound if none exists.
func (q *Queries) GetDonationSettings(ctx context.Context) (models.DonationSettings, error) {
	var s models.DonationSettings
	err := q.conn.QueryRowContext(ctx, `
		SELECT id, total_raised, target_goal, total_donors, avg_per_mosque, updated_at
		FROM donation_settings
		ORDER BY id
		LIMIT 1
	`).Scan(&s.ID, &s.TotalRaised, &s.TargetGoal, &s.TotalDonors, &s.AvgPerMosque, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.DonationSettings{}, ErrNotFound
	}
	if err != nil {
		return models.DonationSettings{}, fmt.Errorf("failed to query donation settings: %w", err)
	}
	return s, nil
}

// EnsureDonationSettings inserts a zero settings row with the given id when
// the table is empty.
func (q *Queries) EnsureDonationSettings(ctx context.Context, id string, now time.Time) error {
	_, err := q.GetDonationSettings(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	_, err = q.conn.ExecContext(ctx, q.rebind(`
		INSERT INTO donation_settings (id, total_raised, target_goal, total_donors, avg_per_mosque, updated_at)
		VALUES (?, 0, 0, 0, 0, ?)
	`), id, now.UTC())
	if err != nil {
		return fmt.Errorf("failed to seed donation settings: %w", err)
	}
	return nil
}

func (q *Queries) UpdateDonationSettings(ctx context.Context, s models.DonationSettings) error {
	res, err := q.conn.ExecContext(ctx, q.rebind(`
		UPDATE donation_settings
		SET total_raised = ?, target_goal = ?, total_donors = ?, avg_per_mosque = ?, updated_at = ?
		WHERE id = ?
	`), s.TotalRaised, s.TargetGoal, s.TotalDonors, s.AvgPerMosque, s.UpdatedAt.UTC(), s.ID)
	if err != nil {
		return fmt.Errorf("failed to update donation settings: %w", err)
	}
	return expectOneRow(res)
}

// ListDonations returns donations newest first.
func (q *Queries) ListDonations(ctx context.Context) ([]models.Donation, error) {
	rows, err := q.conn.QueryContext(ctx, `
		SELECT id, amount, donor_name, email, country, frequency, purpose, created_at
		FROM donations
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations: %w", err)
	}
	defer rows.Close()

	donations := []models.Donation{}
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.Amount, &d.DonorName, &d.Email, &d.Country,
			&d.Frequency, &d.Purpose, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read donations: %w", err)
	}

	return donations, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
