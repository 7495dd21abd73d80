// Package assistant answers visitor questions about the portfolio by
// delegating to a hosted generative model. Its one contract: Respond
// always returns a usable string. Missing API key and provider failures
// both collapse into fixed fallback messages; no error ever escapes to
// the chat surface.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/TechRanbeer/Portfolio-RR-sub000/internal/models"
)

// Fixed replies for the two degraded modes.
const (
	OfflineMessage  = "The AI guide is offline right now (no API key configured). Feel free to browse the projects and resume directly!"
	DegradedMessage = "I hit a snag reaching my brain just now. Please try that question again in a moment."
)

// Roles for conversation turns.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Generator is the model call itself. A nil Generator means no provider
// is configured.
type Generator interface {
	Generate(ctx context.Context, system string, turns []Turn) (string, error)
}

type Bridge struct {
	gen Generator
	log *zap.Logger
}

func NewBridge(gen Generator, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{gen: gen, log: log}
}

// Respond sends the conversation history plus the new user turn to the
// model, with the current site content embedded in the system prompt.
// The return value is always non-empty.
func (b *Bridge) Respond(ctx context.Context, message string, history []Turn, projects []models.Project, blogs []models.Blog) string {
	if b.gen == nil {
		return OfflineMessage
	}

	turns := make([]Turn, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, Turn{Role: RoleUser, Text: message})

	reply, err := b.gen.Generate(ctx, buildSystemPrompt(projects, blogs), turns)
	if err != nil {
		b.log.Warn("assistant call failed", zap.Error(err))
		return DegradedMessage
	}
	if reply == "" {
		return DegradedMessage
	}
	return reply
}

type projectContext struct {
	Title       string   `json:"title"`
	TechStack   []string `json:"tech_stack"`
	Description string   `json:"description"`
	AIContext   string   `json:"ai_context,omitempty"`
}

type blogContext struct {
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	Tags    []string `json:"tags"`
}

// buildSystemPrompt embeds a JSON projection of the live content so the
// model answers from what the site actually shows, including the hidden
// per-project context never rendered to visitors.
func buildSystemPrompt(projects []models.Project, blogs []models.Blog) string {
	pctx := make([]projectContext, 0, len(projects))
	for _, p := range projects {
		pctx = append(pctx, projectContext{
			Title:       p.Title,
			TechStack:   p.TechStack,
			Description: p.Description,
			AIContext:   p.AIContext,
		})
	}
	bctx := make([]blogContext, 0, len(blogs))
	for _, bl := range blogs {
		bctx = append(bctx, blogContext{Title: bl.Title, Excerpt: bl.Excerpt, Tags: bl.Tags})
	}

	projectJSON, _ := json.Marshal(pctx)
	blogJSON, _ := json.Marshal(bctx)

	return fmt.Sprintf(`You are the AI guide on Ranbeer's portfolio site. Answer visitor questions about his work, skills and writing. Be concise and friendly; answer only from the content below and say so when you don't know.

PROJECTS:
%s

BLOG POSTS:
%s`, projectJSON, blogJSON)
}
