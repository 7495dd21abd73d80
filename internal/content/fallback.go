package content

import (
	"time"

	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/models"
)

// SiteConfigID is the fixed primary key of the singleton config row.
// Seeding upserts under this well-known id, so concurrent seeds collapse
// onto one row at the store level instead of relying on check-then-create.
const SiteConfigID = "site-config"

// FallbackSource supplies the content served when no store is configured,
// when a read fails, or when a collection is empty. The bundled source is
// the default; tests and alternate deployments can inject another.
type FallbackSource interface {
	Projects() []models.Project
	Certificates() []models.Certificate
	Experience() []models.Experience
	SiteConfig() *models.SiteConfig
	Blogs() []models.Blog
}

// Bundled serves the content compiled into the binary. Projects and
// blogs carry real entries; certificates, experience and site config
// have no bundled fallback and come back empty/nil.
type Bundled struct{}

func (Bundled) Projects() []models.Project {
	out := make([]models.Project, len(initialProjects))
	copy(out, initialProjects)
	return out
}

func (Bundled) Certificates() []models.Certificate { return []models.Certificate{} }

func (Bundled) Experience() []models.Experience { return []models.Experience{} }

func (Bundled) SiteConfig() *models.SiteConfig { return nil }

func (Bundled) Blogs() []models.Blog {
	out := make([]models.Blog, len(initialBlogs))
	copy(out, initialBlogs)
	return out
}

// Empty is an alternate fallback that serves nothing. Useful for
// deployments that prefer a blank site over stale bundled content.
type Empty struct{}

func (Empty) Projects() []models.Project         { return []models.Project{} }
func (Empty) Certificates() []models.Certificate { return []models.Certificate{} }
func (Empty) Experience() []models.Experience    { return []models.Experience{} }
func (Empty) SiteConfig() *models.SiteConfig     { return nil }
func (Empty) Blogs() []models.Blog               { return []models.Blog{} }

// DefaultSiteConfig is the singleton created the first time the database
// is seeded. Thereafter it is only ever updated.
func DefaultSiteConfig() models.SiteConfig {
	return models.SiteConfig{
		ID:       SiteConfigID,
		SiteName: "Ranbeer Makin",
		Tagline:  "AI engineer who ships end to end",
		Bio:      "I build machine-learning products and the infrastructure under them, from model training to the deployment pipeline.",
		Location: "Bengaluru, India",
		Email:    "hello@ranbeer.dev",
		Social: models.SocialLinks{
			GitHub:   "https://github.com/TechRanbeer",
			LinkedIn: "https://linkedin.com/in/ranbeer-makin",
			Email:    "hello@ranbeer.dev",
		},
	}
}

var initialProjects = []models.Project{
	{
		ID:              "moneo-ai",
		Slug:            "moneo-ai",
		Title:           "Moneo AI",
		Description:     "Personal finance copilot that categorizes spending and answers questions about it.",
		LongDescription: "Moneo ingests bank statements, categorizes transactions with a fine-tuned classifier and exposes a chat interface that answers natural-language questions about spending patterns.",
		Category:        models.CategoryAIML,
		Thumbnail:       "/images/projects/moneo-ai/cover.webp",
		Images: []string{
			"/images/projects/moneo-ai/dashboard.webp",
			"/images/projects/moneo-ai/chat.webp",
		},
		TechStack: []string{"Python", "FastAPI", "PostgreSQL", "React", "Gemini"},
		Metrics: []models.Metric{
			{Label: "Classification accuracy", Value: "94%"},
			{Label: "Statements processed", Value: "12k+"},
		},
		Features: []models.Feature{
			{Title: "Statement ingestion", Description: "PDF and CSV statements parsed into a normalized ledger.", OrderIndex: 1},
			{Title: "Spending chat", Description: "Ask questions about your own transactions in plain language.", OrderIndex: 2},
		},
		Deployment: []models.DeploymentSpec{
			{Category: models.DeploymentHost, Label: "Compute", Value: "Fly.io", OrderIndex: 1},
			{Category: models.DeploymentSecurity, Label: "Auth", Value: "Session tokens, row-level access", OrderIndex: 2},
			{Category: models.DeploymentInfra, Label: "Storage", Value: "PostgreSQL + object store", OrderIndex: 3},
		},
		Featured:  true,
		Status:    models.StatusPublished,
		AIContext: "Flagship project. Emphasize the end-to-end scope: data pipeline, model, product surface.",
		CreatedAt: time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:              "trailguard",
		Slug:            "trailguard",
		Title:           "TrailGuard",
		Description:     "Edge vision system that flags wildlife on forest trails from low-power cameras.",
		LongDescription: "TrailGuard runs a quantized detection model on an embedded board, batches detections over LoRa and aggregates them in a small Go service for rangers.",
		Category:        models.CategoryEmbedded,
		Thumbnail:       "/images/projects/trailguard/cover.webp",
		Images:          []string{"/images/projects/trailguard/board.webp"},
		TechStack:       []string{"C++", "TensorFlow Lite", "Go", "LoRa"},
		Metrics: []models.Metric{
			{Label: "Power draw", Value: "under 2W"},
			{Label: "Detection latency", Value: "300ms"},
		},
		Features: []models.Feature{
			{Title: "On-device inference", Description: "Detection runs entirely on the camera board.", OrderIndex: 1},
			{Title: "Ranger dashboard", Description: "Aggregated sightings with location history.", OrderIndex: 2},
		},
		Deployment: []models.DeploymentSpec{
			{Category: models.DeploymentHost, Label: "Aggregator", Value: "Single VPS", OrderIndex: 1},
			{Category: models.DeploymentCustom, Label: "Field units", Value: "Solar-powered camera boards", OrderIndex: 2},
		},
		Featured:  true,
		Status:    models.StatusPublished,
		CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:              "folio",
		Slug:            "folio",
		Title:           "This site",
		Description:     "The portfolio you are looking at: content service, admin area and AI guide.",
		LongDescription: "A headless content service with a password-gated admin area, a seedable document store and a Gemini-backed assistant that answers questions about the work listed here.",
		Category:        models.CategoryWeb,
		Thumbnail:       "/images/projects/folio/cover.webp",
		TechStack:       []string{"Go", "React", "SQLite", "Gemini"},
		Metrics: []models.Metric{
			{Label: "Cold start", Value: "instant, content is bundled"},
		},
		Features: []models.Feature{
			{Title: "Offline-safe", Description: "Serves bundled content when no backend is configured.", OrderIndex: 1},
		},
		Deployment: []models.DeploymentSpec{
			{Category: models.DeploymentHost, Label: "Compute", Value: "Single container", OrderIndex: 1},
		},
		Status:    models.StatusPublished,
		CreatedAt: time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC),
	},
}

var initialBlogs = []models.Blog{
	{
		ID:          "shipping-moneo",
		Slug:        "shipping-moneo",
		Title:       "Shipping Moneo: from notebook to product",
		Excerpt:     "What it took to turn a transaction classifier into something people actually use.",
		Content:     "The model was the easy part.\n\n## The pipeline\n\nStatements arrive as PDFs, CSVs and the occasional photo of a printout. Normalizing them into one ledger format consumed more engineering time than training ever did.\n\n## Lessons\n\n- Boring storage beats clever storage.\n- Users forgive a wrong category; they do not forgive a lost transaction.",
		Tags:        []string{"ml", "product"},
		ReadingTime: "6 min",
		PublishedAt: time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
		Status:      models.StatusPublished,
	},
	{
		ID:          "edge-inference-notes",
		Slug:        "edge-inference-notes",
		Title:       "Notes on running vision models at 2 watts",
		Excerpt:     "Quantization, batching and the tricks that kept TrailGuard alive on solar power.",
		Content:     "Power budget drives every decision on an edge device.\n\n## Quantization\n\nInt8 got us a 3x speedup with a accuracy drop we could live with. The surprising cost was in pre-processing, not inference.\n\n## Duty cycling\n\nThe camera sleeps until a PIR sensor wakes it. Detection runs on at most one frame per second.",
		Tags:        []string{"embedded", "ml"},
		ReadingTime: "4 min",
		PublishedAt: time.Date(2024, 4, 18, 0, 0, 0, 0, time.UTC),
		Status:      models.StatusPublished,
	},
}
