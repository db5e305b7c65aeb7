// Package jd drafts, refines, and repackages job descriptions.
package jd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/prompts"
)

// Generate drafts a job description for the role. When the model fails or
// returns nothing, generation degrades to the static fallback template so
// campaign creation never blocks on the text service.
func Generate(ctx context.Context, client llm.Client, role, experience string) string {
	if client != nil {
		prompt := prompts.Format(prompts.MustGet("jd.json", "draft"), map[string]string{
			"Role":       role,
			"Experience": experience,
		})
		text, err := client.GenerateContent(ctx, prompt, llm.TierLite)
		if err == nil {
			return strings.TrimSpace(text)
		}
		log.Printf("JD generation failed (%v); using fallback template", err)
	}
	return Fallback(role, experience)
}

// Refine reworks an existing JD against recruiter feedback. Unlike Generate
// there is no sensible static fallback, so errors propagate.
func Refine(ctx context.Context, client llm.Client, currentJD, feedback string) (string, error) {
	if client == nil {
		return "", fmt.Errorf("text service is required for refinement")
	}
	prompt := prompts.Format(prompts.MustGet("jd.json", "refine"), map[string]string{
		"JD":       currentJD,
		"Feedback": feedback,
	})
	text, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("failed to refine JD: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// OptimizeForLinkedIn compresses a JD to fit a LinkedIn post budget.
func OptimizeForLinkedIn(ctx context.Context, client llm.Client, jdText string) (string, error) {
	if client == nil {
		return "", fmt.Errorf("text service is required for LinkedIn optimization")
	}
	prompt := prompts.Format(prompts.MustGet("jd.json", "linkedin"), map[string]string{
		"JD": jdText,
	})
	text, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("failed to optimize JD for LinkedIn: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Fallback is the deterministic JD used when no text service is available.
func Fallback(role, experience string) string {
	if experience == "" {
		experience = "0-2 years"
	}
	return fmt.Sprintf(`# %s

## About the role
We're looking for an engineer who wants to build real products, ship to
users fast, and learn modern backend practices.

## Responsibilities
- Build and maintain backend services / APIs
- Write clean, testable code and basic docs
- Debug production issues with teammates
- Collaborate with product & frontend

## Must-haves
- %s of relevant experience
- Comfort with at least one server-side language (Python / Node / Go / Java)
- SQL and data-structures fundamentals
- Understanding of HTTP / REST / Git basics

## Nice-to-haves
- Docker / container basics
- Cloud exposure (AWS/GCP/Azure)
- Basic testing (unit/integration)

## What we offer
- Mentorship from experienced engineers
- Real ownership early in your career
- Supportive, fast-paced learning environment

## How to apply
Fill the application form and share your resume link (PDF).`, role, experience)
}
