package profilerepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbuddy/finance-advisor/internal/domain/profile"
)

// PostgresRepository implements profile.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get fetches one profile by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (profile.Profile, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, age, occupation, income, current_balance, monthly_spending,
		       experience_level, goals, risk_tolerance, description, situation,
		       user_type, last_updated
		FROM user_profiles
		WHERE id = $1
	`, id)

	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.Age, &p.Occupation, &p.Income, &p.CurrentBalance, &p.MonthlySpending,
		&p.ExperienceLevel, &p.Goals, &p.RiskTolerance, &p.Description, &p.Situation,
		&p.UserType, &p.LastUpdated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return profile.Profile{}, false, nil
	}
	if err != nil {
		return profile.Profile{}, false, err
	}
	return p, true, nil
}

// Save upserts one profile row.
func (r *PostgresRepository) Save(ctx context.Context, p profile.Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_profiles (
			id, age, occupation, income, current_balance, monthly_spending,
			experience_level, goals, risk_tolerance, description, situation,
			user_type, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			age = EXCLUDED.age,
			occupation = EXCLUDED.occupation,
			income = EXCLUDED.income,
			current_balance = EXCLUDED.current_balance,
			monthly_spending = EXCLUDED.monthly_spending,
			experience_level = EXCLUDED.experience_level,
			goals = EXCLUDED.goals,
			risk_tolerance = EXCLUDED.risk_tolerance,
			description = EXCLUDED.description,
			situation = EXCLUDED.situation,
			user_type = EXCLUDED.user_type,
			last_updated = EXCLUDED.last_updated
	`, p.ID, p.Age, p.Occupation, p.Income, p.CurrentBalance, p.MonthlySpending,
		p.ExperienceLevel, p.Goals, p.RiskTolerance, p.Description, p.Situation,
		p.UserType, p.LastUpdated)
	return err
}

var _ profile.Repository = (*PostgresRepository)(nil)
