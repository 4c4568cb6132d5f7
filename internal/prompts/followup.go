package prompts

import (
	"fmt"
	"strings"

	"github.com/mockmate/interview-service/internal/models"
)

// FollowUpInput carries everything the gate knows when it consults the model.
type FollowUpInput struct {
	Question      string
	Answer        string
	QuestionIndex int
	TotalCount    int
	AskedSoFar    int
	UsedTypes     []models.FollowUpType
	JobTitle      string
}

// BuildFollowUpPrompt renders the follow-up gate prompt. The decision itself
// is delegated to the model; the hard cap is enforced locally before this
// prompt is ever built.
func BuildFollowUpPrompt(in FollowUpInput) string {
	used := make([]string, 0, len(in.UsedTypes))
	for _, t := range in.UsedTypes {
		used = append(used, string(t))
	}
	usedStr := strings.Join(used, ", ")
	if usedStr == "" {
		usedStr = "none"
	}

	return fmt.Sprintf(`You are an expert interviewer for a %s position. Evaluate this answer and decide if a follow-up question is warranted.

QUESTION: "%s"

CANDIDATE'S ANSWER (transcribed from speech, ignore grammar/spelling):
"%s"

CONTEXT:
- This is question %d of %d
- Follow-ups asked so far this interview: %d
- Maximum follow-ups allowed: %d
- Follow-up types already used: %s

EVALUATION CRITERIA - A follow-up is warranted ONLY if:
1. LACKS SPECIFICS: Said "I improved metrics" but gave no numbers, timeframes, or concrete examples
2. MISSED KEY DIMENSION: Explained technical approach but not stakeholder buy-in, or vice versa
3. SIGNIFICANTLY SHORT: Gave 30 seconds on a question needing a full STAR response (but don't penalize concise answers that were actually complete)

DO NOT follow up if:
- Answer was thorough and specific (even if short)
- Candidate said "I don't have experience with that" (nothing to probe)
- Answer was 3 minutes of detailed, complete response

FOLLOW-UP TYPES (choose one that hasn't been used yet if possible):
- DEPTH_PROBE: When they mention a result without the process ("you said you increased retention by 40%%, walk me through exactly what you changed")
- MISSING_ELEMENT: When they covered one angle but missed another ("you explained the technical solution but how did you get your team aligned?")
- CHALLENGE: When the answer sounds good but untested ("what would you have done if the timeline was cut in half?")
- CLARIFICATION: When something is vague ("when you say you led a large team, how many people and what were their roles?")

CRITICAL: The follow-up MUST reference something SPECIFIC from their actual answer. Never generic questions like "tell me more about your experience."

Return ONLY valid JSON:
{
  "shouldFollowUp": true/false,
  "reason": "thorough_answer" | "lacks_specifics" | "missed_dimension" | "too_short" | "no_experience",
  "followUpType": "DEPTH_PROBE" | "MISSING_ELEMENT" | "CHALLENGE" | "CLARIFICATION" | null,
  "followUpQuestion": "specific follow-up question referencing their answer" | null,
  "whatWasMissing": "brief note on what the follow-up is probing for" | null
}`,
		in.JobTitle, in.Question, in.Answer,
		in.QuestionIndex+1, in.TotalCount, in.AskedSoFar, models.MaxFollowUps, usedStr)
}
