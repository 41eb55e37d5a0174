package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-vet-reviews/internal/domain/posts"
)

type PostsRepo struct {
	db *sql.DB
}

func NewPostsRepo(db *sql.DB) *PostsRepo {
	return &PostsRepo{db: db}
}

const postColumns = `id, user_id, user_name, yelp_id, vet_name, post_title, image_url, address, phone, toggles, created_at, version`

func (r *PostsRepo) Create(ctx context.Context, p posts.Post) error {
	toggles, err := encodeToggles(p.Toggles)
	if err != nil {
		return fmt.Errorf("encode toggles: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO posts (`+postColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.UserID,
		p.UserName,
		p.YelpID,
		p.VetName,
		p.PostTitle,
		p.ImageURL,
		p.Address,
		p.Phone,
		toggles,
		p.CreatedAt,
		p.Version,
	)
	return err
}

func (r *PostsRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return posts.Post{}, posts.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE id = $1
	`, id)

	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return posts.Post{}, posts.ErrNotFound
	}
	return p, err
}

// Update solo persiste las listas de toggles; el resto del post es inmutable.
func (r *PostsRepo) Update(ctx context.Context, p posts.Post) error {
	toggles, err := encodeToggles(p.Toggles)
	if err != nil {
		return fmt.Errorf("encode toggles: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE posts
		SET toggles = $3, version = version + 1
		WHERE id = $1 AND version = $2
	`, p.ID, p.Version, toggles)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, p.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return posts.ErrNotFound
	}
	return posts.ErrVersionConflict
}

func (r *PostsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return posts.ErrNotFound
	}
	return nil
}

func (r *PostsRepo) List(ctx context.Context, f posts.ListFilter) (posts.Page, error) {
	out := posts.Page{Posts: []posts.Post{}}

	if err := r.db.QueryRowContext(ctx, `
		SELECT count(*) FROM posts WHERE ($1 = '' OR user_id = $1)
	`, f.UserID).Scan(&out.Count); err != nil {
		return posts.Page{}, err
	}
	if f.Offset >= out.Count {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE ($1 = '' OR user_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, f.UserID, f.Limit, f.Offset)
	if err != nil {
		return posts.Page{}, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return posts.Page{}, err
		}
		out.Posts = append(out.Posts, p)
	}
	return out, rows.Err()
}

func scanPost(s scanner) (posts.Post, error) {
	var p posts.Post
	var toggles []byte
	if err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.UserName,
		&p.YelpID,
		&p.VetName,
		&p.PostTitle,
		&p.ImageURL,
		&p.Address,
		&p.Phone,
		&toggles,
		&p.CreatedAt,
		&p.Version,
	); err != nil {
		return posts.Post{}, err
	}

	var err error
	if p.Toggles, err = decodeToggles(toggles); err != nil {
		return posts.Post{}, fmt.Errorf("decode toggles: %w", err)
	}
	return p, nil
}
