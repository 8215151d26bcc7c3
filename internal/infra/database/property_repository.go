package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/skylineestates/leaddesk/internal/entity"
)

type PropertyRepository struct {
	DB *sql.DB
}

func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{DB: db}
}

func (r *PropertyRepository) Create(ctx context.Context, p *entity.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = "available"
	}

	query := `
		INSERT INTO properties (id, title, location, property_type, price, size,
			bedrooms, bathrooms, description, featured, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Location, p.PropertyType, p.Price, p.Size,
		p.Bedrooms, p.Bathrooms, nullString(p.Description), p.Featured, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PropertyRepository) List(ctx context.Context) ([]entity.Property, error) {
	query := `
		SELECT id, title, location, property_type, price, size,
			bedrooms, bathrooms, description, featured, status, created_at, updated_at
		FROM properties ORDER BY featured DESC, created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entity.Property
	for rows.Next() {
		var p entity.Property
		var desc sql.NullString
		err := rows.Scan(&p.ID, &p.Title, &p.Location, &p.PropertyType, &p.Price, &p.Size,
			&p.Bedrooms, &p.Bathrooms, &desc, &p.Featured, &p.Status, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		p.Description = desc.String
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	query := `
		SELECT id, title, location, property_type, price, size,
			bedrooms, bathrooms, description, featured, status, created_at, updated_at
		FROM properties WHERE id = $1
	`

	var p entity.Property
	var desc sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Location, &p.PropertyType, &p.Price, &p.Size,
		&p.Bedrooms, &p.Bathrooms, &desc, &p.Featured, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrPropertyNotFound
		}
		return nil, err
	}
	p.Description = desc.String
	return &p, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *entity.Property) error {
	p.UpdatedAt = time.Now()

	query := `
		UPDATE properties SET
			title = $2, location = $3, property_type = $4, price = $5, size = $6,
			bedrooms = $7, bathrooms = $8, description = $9, featured = $10,
			status = $11, updated_at = $12
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Location, p.PropertyType, p.Price, p.Size,
		p.Bedrooms, p.Bathrooms, nullString(p.Description), p.Featured,
		p.Status, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrPropertyNotFound
	}
	return nil
}
