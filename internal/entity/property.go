package entity

import (
	"context"
	"errors"
	"time"
)

var ErrPropertyNotFound = errors.New("property not found")

type Property struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	PropertyType string    `json:"property_type"` // plot, house, apartment, commercial
	Price        string    `json:"price"`
	Size         string    `json:"size"`
	Bedrooms     int       `json:"bedrooms,omitempty"`
	Bathrooms    int       `json:"bathrooms,omitempty"`
	Description  string    `json:"description,omitempty"`
	Featured     bool      `json:"featured"`
	Status       string    `json:"status"` // available, pending, sold
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PropertyRepositoryInterface interface {
	Create(ctx context.Context, p *Property) error
	List(ctx context.Context) ([]Property, error)
	FindByID(ctx context.Context, id string) (*Property, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id string) error
}
