package database

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skylineestates/leaddesk/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, name, phone, email, location, property_type, budget,
	source, lead_type, status, priority, assigned_to, message,
	owner, contact, plot_no, size, direction, price, negotiable,
	address, landmark, commission, age, water,
	created_at, updated_at
`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Phone, nullString(lead.Email),
		nullString(lead.Location), nullString(lead.PropertyType), nullString(lead.Budget),
		lead.Source, lead.LeadType, lead.Status, lead.Priority,
		nullString(lead.AssignedTo), nullString(lead.Message),
		nullString(lead.Owner), nullString(lead.Contact), nullString(lead.PlotNo),
		nullString(lead.Size), nullString(lead.Direction), nullString(lead.Price),
		nullString(lead.Negotiable), nullString(lead.Address), nullString(lead.Landmark),
		nullString(lead.Commission), nullString(lead.Age), nullString(lead.Water),
		lead.CreatedAt, lead.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrLeadAlreadyExists
		}
		log.Printf("lead insert failed: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	lead.UpdatedAt = time.Now()

	query := `
		UPDATE leads SET
			name = $2, phone = $3, email = $4, location = $5, property_type = $6,
			budget = $7, source = $8, lead_type = $9, status = $10, priority = $11,
			assigned_to = $12, message = $13, updated_at = $14
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Phone, nullString(lead.Email),
		nullString(lead.Location), nullString(lead.PropertyType), nullString(lead.Budget),
		lead.Source, lead.LeadType, lead.Status, lead.Priority,
		nullString(lead.AssignedTo), nullString(lead.Message), lead.UpdatedAt,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Stats(ctx context.Context) (*entity.LeadStats, error) {
	stats := &entity.LeadStats{ByStatus: make(map[string]int)}

	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.ConversionRate = entity.ConversionRate(stats.ByStatus[entity.StatusConverted], stats.Total)

	err = r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE created_at >= date_trunc('month', now())`,
	).Scan(&stats.ThisMonth)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var email, location, propertyType, budget, assignedTo, message sql.NullString
	var owner, contact, plotNo, size, direction, price sql.NullString
	var negotiable, address, landmark, commission, age, water sql.NullString

	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Phone, &email, &location, &propertyType, &budget,
		&lead.Source, &lead.LeadType, &lead.Status, &lead.Priority, &assignedTo, &message,
		&owner, &contact, &plotNo, &size, &direction, &price, &negotiable,
		&address, &landmark, &commission, &age, &water,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Email = email.String
	lead.Location = location.String
	lead.PropertyType = propertyType.String
	lead.Budget = budget.String
	lead.AssignedTo = assignedTo.String
	lead.Message = message.String
	lead.Owner = owner.String
	lead.Contact = contact.String
	lead.PlotNo = plotNo.String
	lead.Size = size.String
	lead.Direction = direction.String
	lead.Price = price.String
	lead.Negotiable = negotiable.String
	lead.Address = address.String
	lead.Landmark = landmark.String
	lead.Commission = commission.String
	lead.Age = age.String
	lead.Water = water.String

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
