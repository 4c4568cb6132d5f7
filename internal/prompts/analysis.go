package prompts

import (
	"fmt"
	"strings"

	"github.com/mockmate/interview-service/internal/models"
)

const followUpRules = `FOLLOW-UP HANDLING:
- Some questions have follow-up questions marked with [FOLLOW-UP]
- For questions WITH a follow-up: score = 70% main answer + 30% follow-up answer
- Provide feedback for both the main answer AND the follow-up separately
- Include the follow-up details in the questionScores array

`

const followUpSchemaFields = `,
      "hasFollowUp": <true if this question had a follow-up, false otherwise>,
      "followUp": <null if no follow-up, OR object with: { "question": "...", "score": 0-100, "feedback": "...", "strengths": [...], "improvements": [...] }>`

// BuildAnalysisPrompt renders the scorecard prompt for a full interview.
// The follow-up schema fields appear on every question block when at least
// one group carries a follow-up, and on none otherwise, so the model is
// never tempted to hallucinate them.
func BuildAnalysisPrompt(groups []models.QuestionGroup, jobTitle string) string {
	transcripts := make([]string, 0, len(groups))
	for i, g := range groups {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Question %d: %s\nCandidate's Answer: %s\nTime Spent: %d seconds",
			i+1, g.Main.Question, g.Main.Answer, g.Main.TimeSpent)
		if g.FollowUp != nil {
			fmt.Fprintf(&sb, "\n\n[FOLLOW-UP for Question %d]: %s\nCandidate's Follow-up Answer: %s\nTime Spent: %d seconds",
				i+1, g.FollowUp.Question, g.FollowUp.Answer, g.FollowUp.TimeSpent)
		}
		transcripts = append(transcripts, sb.String())
	}

	rules := ""
	schemaFields := ""
	if models.HasAnyFollowUp(groups) {
		rules = followUpRules
		schemaFields = followUpSchemaFields
	}

	return fmt.Sprintf(`You are an expert interview coach analyzing a candidate's SPOKEN interview performance for a %s position. The answers below were captured via voice transcription, so ignore any spelling/grammar issues - focus only on the CONTENT and SUBSTANCE of their responses.

Interview Responses:
%s

Analyze each answer and provide a comprehensive scorecard. Be fair but rigorous - this is a real interview assessment. Remember: this is transcribed speech, so evaluate what they SAID, not how it's written.

SCORING RULES:
- Empty/skipped answers: 0-20
- Very brief or "I don't know": 20-40
- Vague answer without examples: 40-60
- Good answer with some examples: 60-80
- Excellent detailed answer with specifics: 80-100

%sReturn ONLY valid JSON in this exact format:
{
  "overallScore": <number 0-100>,
  "passed": <boolean - true if score >= 70>,
  "verdict": "<one sentence: 'Congratulations! You got the job!' or 'Unfortunately, you did not pass this interview.'>",
  "summary": "<2-3 sentence overall assessment>",
  "questionScores": [
    {
      "questionNum": 1,
      "score": <0-100>,
      "feedback": "<specific feedback for this answer - focus on content, structure, examples, not grammar>",
      "strengths": ["<strength1>", "<strength2>"],
      "improvements": ["<improvement1>", "<improvement2>"]%s
    }
  ],
  "categories": {
    "clarity": {"score": <0-100>, "feedback": "<was their point clear and easy to follow?>"},
    "relevance": {"score": <0-100>, "feedback": "<did they actually answer the question asked?>"},
    "depth": {"score": <0-100>, "feedback": "<did they provide enough detail and specifics?>"},
    "confidence": {"score": <0-100>, "feedback": "<did they sound confident and assured?>"},
    "conciseness": {"score": <0-100>, "feedback": "<were they focused or did they ramble?>"},
    "starMethod": {"score": <0-100>, "feedback": "<did they use Situation, Task, Action, Result for behavioral questions?>"},
    "technicalAccuracy": {"score": <0-100>, "feedback": "<was their technical knowledge accurate?>"},
    "enthusiasm": {"score": <0-100>, "feedback": "<did they show genuine interest in the role?>"}
  },
  "topStrengths": ["<strength1>", "<strength2>", "<strength3>"],
  "criticalImprovements": ["<improvement1>", "<improvement2>", "<improvement3>"],
  "coachingTip": "<one specific, actionable tip for their next interview>"
}`, jobTitle, strings.Join(transcripts, "\n\n"), rules, schemaFields)
}
