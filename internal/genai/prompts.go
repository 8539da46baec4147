package genai

import (
	"context"
	"fmt"

	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

// Assistant wraps a TextGenerator with the portal's feature prompts.
// Every method returns renderable text; failures surface as "Error:" strings
// from the underlying generator.
type Assistant struct {
	gen ports.TextGenerator
}

// NewAssistant creates an Assistant over the given generator.
func NewAssistant(gen ports.TextGenerator) *Assistant {
	return &Assistant{gen: gen}
}

// ResumeSuggestions reviews resume text and proposes concrete improvements.
func (a *Assistant) ResumeSuggestions(ctx context.Context, resumeText string) string {
	prompt := fmt.Sprintf(
		"You are a career counselor reviewing a student resume for campus placements. "+
			"Give specific, actionable suggestions to improve it: structure, wording, "+
			"quantified achievements, and missing sections. Resume:\n\n%s", resumeText)
	return a.gen.Generate(ctx, prompt)
}

// ResumeValidation checks whether resume text covers the essentials.
func (a *Assistant) ResumeValidation(ctx context.Context, resumeText string) string {
	prompt := fmt.Sprintf(
		"Check this student resume for completeness. List any missing essentials "+
			"(contact details, education, skills, projects or experience) and flag "+
			"formatting problems. Be brief. Resume:\n\n%s", resumeText)
	return a.gen.Generate(ctx, prompt)
}

// InterviewQuestions generates practice questions for a role.
func (a *Assistant) InterviewQuestions(ctx context.Context, role, topic string) string {
	prompt := fmt.Sprintf(
		"Generate 5 interview questions for a %s position focusing on %s. "+
			"Number them and keep each question to one sentence.", role, topic)
	return a.gen.Generate(ctx, prompt)
}

// AnswerFeedback critiques a candidate's answer to an interview question.
func (a *Assistant) AnswerFeedback(ctx context.Context, question, answer string) string {
	prompt := fmt.Sprintf(
		"An interview candidate was asked: %q\nThey answered: %q\n"+
			"Give short feedback: what was strong, what was weak, and a better framing.",
		question, answer)
	return a.gen.Generate(ctx, prompt)
}

// JobDescription drafts a posting description for recruiters.
func (a *Assistant) JobDescription(ctx context.Context, title, company, requirements string) string {
	prompt := fmt.Sprintf(
		"Write a concise job description for the role %q at %s. "+
			"Requirements to cover: %s. Use short paragraphs and a bullet list of qualifications.",
		title, company, requirements)
	return a.gen.Generate(ctx, prompt)
}

// CareerGuidance answers a student's open-ended career question.
func (a *Assistant) CareerGuidance(ctx context.Context, question string) string {
	prompt := fmt.Sprintf(
		"You are a placement-cell career advisor for university students. "+
			"Answer the following question with practical, India-campus-placement-aware advice:\n\n%s",
		question)
	return a.gen.Generate(ctx, prompt)
}
