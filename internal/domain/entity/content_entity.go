package entity

import "time"

type MediaType string

const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

// GalleryCategories lists the categories the public gallery filters by.
var GalleryCategories = []string{"Programs", "Events", "Bootcamps", "Outreach"}

// ReportTypes lists the kinds of published reports.
var ReportTypes = []string{"Annual Report", "Financial Report", "MEL Framework"}

type BlogPost struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	FeaturedImageURL string    `json:"featured_image_url,omitempty"`
	PublishedAt      time.Time `json:"published_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type GalleryItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	MediaURL    string    `json:"media_url"`
	MediaType   MediaType `json:"media_type"`
	Category    string    `json:"category"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Report is a downloadable publication. PublishDate carries a date only.
type Report struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ReportType  string    `json:"report_type"`
	FileURL     string    `json:"file_url"`
	PublishDate time.Time `json:"publish_date"`
	CreatedAt   time.Time `json:"created_at"`
}
