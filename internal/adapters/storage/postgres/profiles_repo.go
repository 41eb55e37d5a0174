package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-vet-reviews/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

const profileColumns = `id, user_id, zipcode, state, city, pets, history, created_at, version`

func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	pets, history, err := encodeProfileDocs(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		p.UserID,
		p.Zipcode,
		p.State,
		p.City,
		pets,
		history,
		p.CreatedAt,
		p.Version,
	)
	if isUniqueViolation(err) {
		return profiles.ErrAlreadyExists
	}
	return err
}

// Update aplica compare-and-swap sobre version.
func (r *ProfilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	pets, history, err := encodeProfileDocs(p)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET
			zipcode = $3,
			state = $4,
			city = $5,
			pets = $6,
			history = $7,
			version = version + 1
		WHERE user_id = $1 AND version = $2
	`,
		p.UserID,
		p.Version,
		p.Zipcode,
		p.State,
		p.City,
		pets,
		history,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM profiles WHERE user_id = $1)`, p.UserID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return profiles.ErrNotFound
	}
	return profiles.ErrVersionConflict
}

func (r *ProfilesRepo) GetByUser(ctx context.Context, userID string) (profiles.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profiles.Profile{}, profiles.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE user_id = $1
	`, userID)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, err
}

func (r *ProfilesRepo) List(ctx context.Context) ([]profiles.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profiles.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner) (profiles.Profile, error) {
	var p profiles.Profile
	var pets, history []byte
	if err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.Zipcode,
		&p.State,
		&p.City,
		&pets,
		&history,
		&p.CreatedAt,
		&p.Version,
	); err != nil {
		return profiles.Profile{}, err
	}

	var err error
	if p.Pets, err = decodePets(pets); err != nil {
		return profiles.Profile{}, fmt.Errorf("decode pets: %w", err)
	}
	if p.History, err = decodeHistory(history); err != nil {
		return profiles.Profile{}, fmt.Errorf("decode history: %w", err)
	}
	return p, nil
}

func encodeProfileDocs(p profiles.Profile) (string, string, error) {
	pets, err := encodePets(p.Pets)
	if err != nil {
		return "", "", fmt.Errorf("encode pets: %w", err)
	}
	history, err := encodeHistory(p.History)
	if err != nil {
		return "", "", fmt.Errorf("encode history: %w", err)
	}
	return pets, history, nil
}
