package repository

import (
	"context"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
)

type BlogRepository interface {
	List(ctx context.Context) ([]entity.BlogPost, error)
	Search(ctx context.Context, q string, limit int) ([]entity.BlogPost, error)
	GetByID(ctx context.Context, id string) (*entity.BlogPost, error)
	Create(ctx context.Context, p *entity.BlogPost) error
	Update(ctx context.Context, p *entity.BlogPost) error
	Delete(ctx context.Context, id string) error
}

type GalleryRepository interface {
	// List returns items newest first; an empty category returns all.
	List(ctx context.Context, category string) ([]entity.GalleryItem, error)
	GetByID(ctx context.Context, id string) (*entity.GalleryItem, error)
	Create(ctx context.Context, g *entity.GalleryItem) error
	Update(ctx context.Context, g *entity.GalleryItem) error
	Delete(ctx context.Context, id string) error
}

type ReportRepository interface {
	List(ctx context.Context) ([]entity.Report, error)
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	Create(ctx context.Context, r *entity.Report) error
	Update(ctx context.Context, r *entity.Report) error
	Delete(ctx context.Context, id string) error
}
