// Package student exposes the portfolio sub-resources of a student card:
// skills, educations, experiences, projects, achievements and awards.
package student

import "time"

// Skill is a named proficiency with a 0-100 level.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Level     int       `gorm:"not null" json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Education is one entry in the education history.
type Education struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"userId"`
	Degree      string     `gorm:"size:255;not null" json:"degree"`
	Major       string     `gorm:"size:255" json:"major"`
	Institution string     `gorm:"size:255;not null" json:"institution"`
	StartDate   time.Time  `gorm:"not null" json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	GPA         float64    `json:"gpa"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Experience is one entry in the work history.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"userId"`
	Role        string     `gorm:"size:255;not null" json:"role"`
	Company     string     `gorm:"size:255;not null" json:"company"`
	StartDate   time.Time  `gorm:"not null" json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Description string     `json:"description"`
	IsCurrent   bool       `gorm:"default:false" json:"isCurrent"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Project is a portfolio project. Description and Technologies are the
// canonical field names (earlier revisions used desc/tech).
type Project struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"userId"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `json:"description"`
	Technologies string    `gorm:"size:512" json:"technologies"`
	Link         string    `gorm:"size:512" json:"link"`
	Category     string    `gorm:"size:255" json:"category"`
	ImageURL     string    `gorm:"size:512" json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Achievement is a dated accomplishment, optionally with a certificate blob.
type Achievement struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"index;not null" json:"userId"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `json:"description"`
	Date           *time.Time `json:"date"`
	CertificateURL string     `gorm:"size:512" json:"certificateUrl"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Award is a recognition from an issuer, optionally with an image blob.
type Award struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Issuer      string    `gorm:"size:255;not null" json:"issuer"`
	Date        time.Time `gorm:"not null" json:"date"`
	Description string    `json:"description"`
	ImageURL    string    `gorm:"size:512" json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
