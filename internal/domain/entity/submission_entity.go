package entity

import "time"

type ContactMessage struct {
	ID           string    `json:"id"`
	SenderName   string    `json:"sender_name"`
	SenderEmail  string    `json:"sender_email"`
	SenderPhone  string    `json:"sender_phone,omitempty"`
	Subject      string    `json:"subject,omitempty"`
	InquiryType  string    `json:"inquiry_type,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

type VolunteerApplication struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Skills        string    `json:"skills,omitempty"`
	Availability  string    `json:"availability,omitempty"`
	WhyInterested string    `json:"why_interested,omitempty"`
	CVURL         string    `json:"cv_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DashboardStats are the record counts shown on the admin landing view.
type DashboardStats struct {
	Volunteers      int64 `json:"volunteers"`
	Reports         int64 `json:"reports"`
	ContactMessages int64 `json:"contact_messages"`
	GalleryItems    int64 `json:"gallery_items"`
	BlogPosts       int64 `json:"blog_posts"`
}
