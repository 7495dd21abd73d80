package models

import "time"

// Project categories shown in the catalog filter.
const (
	CategoryAIML     = "AI/ML"
	CategoryWeb      = "Web"
	CategoryEmbedded = "Embedded"
	CategoryInfra    = "Infra"
)

// Deployment spec categories.
const (
	DeploymentHost     = "HOST"
	DeploymentSecurity = "SECURITY"
	DeploymentInfra    = "INFRA"
	DeploymentCustom   = "CUSTOM"
)

// Publication status. Status gates public visibility.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex"`
}

type DeploymentSpec struct {
	Category   string `json:"category"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	OrderIndex int    `json:"orderIndex"`
}

type Project struct {
	ID              string           `json:"id"`
	Slug            string           `json:"slug"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	LongDescription string           `json:"longDescription"`
	Category        string           `json:"category"`
	Thumbnail       string           `json:"thumbnail"`
	Images          []string         `json:"images"`
	TechStack       []string         `json:"techStack"`
	Metrics         []Metric         `json:"metrics"`
	Features        []Feature        `json:"features"`
	Deployment      []DeploymentSpec `json:"deployment"`
	Featured        bool             `json:"featured"`
	Status          string           `json:"status"`
	AIContext       string           `json:"aiContext,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	// LastSyncedAt is set from the row's updated_at on read; it has no
	// wire counterpart of its own and is not written back.
	LastSyncedAt time.Time `json:"lastSyncedAt,omitempty"`
}

type Certificate struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Issuer          string `json:"issuer"`
	Date            string `json:"date"`
	Category        string `json:"category"`
	Status          string `json:"status"`
	VerificationURL string `json:"verificationUrl,omitempty"`
}

type Experience struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employmentType"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate,omitempty"`
	IsCurrent      bool     `json:"isCurrent"`
	Achievements   []string `json:"achievements"`
	OrderIndex     int      `json:"orderIndex"`
}

type SocialLinks struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	Email    string `json:"email"`
}

// SiteConfig is a singleton record: created once, then only updated.
type SiteConfig struct {
	ID        string      `json:"id"`
	SiteName  string      `json:"siteName"`
	Tagline   string      `json:"tagline"`
	Bio       string      `json:"bio"`
	Location  string      `json:"location"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	Social    SocialLinks `json:"socialLinks"`
	UpdatedAt time.Time   `json:"updatedAt,omitempty"`
}

// Blog posts are sourced from bundled content only; there is no remote
// persistence for them.
type Blog struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
	ReadingTime string    `json:"readingTime"`
	PublishedAt time.Time `json:"publishedAt"`
	Status      string    `json:"status"`
}

type AuditLog struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

type AnalyticsEvent struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}
