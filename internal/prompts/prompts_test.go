package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/interview-service/internal/models"
)

func TestBuildAnalysisPrompt(t *testing.T) {
	mainOnly := models.GroupAnswers([]models.Answer{
		{Question: "Q1", Answer: "A1", TimeSpent: 60},
		{Question: "Q2", Answer: "A2", TimeSpent: 90},
	})

	withFollowUp := models.GroupAnswers([]models.Answer{
		{Question: "Q1", Answer: "A1", TimeSpent: 60},
		{Question: "FU1", Answer: "FA1", TimeSpent: 30, IsFollowUp: true},
		{Question: "Q2", Answer: "A2", TimeSpent: 90},
	})

	t.Run("includes transcripts and job title", func(t *testing.T) {
		prompt := BuildAnalysisPrompt(mainOnly, "Staff Engineer")

		assert.Contains(t, prompt, "Staff Engineer position")
		assert.Contains(t, prompt, "Question 1: Q1")
		assert.Contains(t, prompt, "Time Spent: 90 seconds")
	})

	t.Run("follow-up schema only when a follow-up was asked", func(t *testing.T) {
		plain := BuildAnalysisPrompt(mainOnly, "Staff Engineer")
		probed := BuildAnalysisPrompt(withFollowUp, "Staff Engineer")

		assert.NotContains(t, plain, "hasFollowUp")
		assert.NotContains(t, plain, "FOLLOW-UP HANDLING")

		assert.Contains(t, probed, "hasFollowUp")
		assert.Contains(t, probed, "FOLLOW-UP HANDLING")
		assert.Contains(t, probed, "[FOLLOW-UP for Question 1]: FU1")
		assert.Contains(t, probed, "70% main answer + 30% follow-up answer")
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t,
			BuildAnalysisPrompt(withFollowUp, "Staff Engineer"),
			BuildAnalysisPrompt(withFollowUp, "Staff Engineer"))
	})
}

func TestBuildQuestionPrompt(t *testing.T) {
	prompt := BuildQuestionPrompt("Product Manager", "Owns the roadmap")

	assert.Contains(t, prompt, "Product Manager")
	assert.Contains(t, prompt, "Owns the roadmap")

	// No description still renders a usable prompt.
	bare := BuildQuestionPrompt("Product Manager", "")
	assert.Contains(t, bare, "Product Manager")
}

func TestBuildFollowUpPrompt(t *testing.T) {
	prompt := BuildFollowUpPrompt(FollowUpInput{
		Question:      "Tell me about a conflict.",
		Answer:        "We disagreed about priorities.",
		QuestionIndex: 2,
		TotalCount:    5,
		AskedSoFar:    1,
		UsedTypes:     []models.FollowUpType{models.FollowUpDepthProbe},
		JobTitle:      "Team Lead",
	})

	assert.Contains(t, prompt, "Tell me about a conflict.")
	assert.Contains(t, prompt, "We disagreed about priorities.")
	assert.Contains(t, prompt, "Team Lead")
	assert.Contains(t, prompt, string(models.FollowUpDepthProbe))
}

func TestBuildVideoPrompt(t *testing.T) {
	prompt := BuildVideoPrompt(4)
	assert.Contains(t, prompt, "4")
	assert.Contains(t, prompt, "overallVideoScore")
}

func TestFallbackQuestions(t *testing.T) {
	questions := FallbackQuestions("Security Analyst")

	require.Len(t, questions, QuestionCount)
	found := false
	for _, q := range questions {
		assert.NotEmpty(t, strings.TrimSpace(q))
		if strings.Contains(q, "Security Analyst") {
			found = true
		}
	}
	assert.True(t, found)
}
