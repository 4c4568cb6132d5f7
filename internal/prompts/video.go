package prompts

import "fmt"

// BuildVideoPrompt renders the presence-analysis prompt for a set of
// interview snapshots.
func BuildVideoPrompt(sampleCount int) string {
	return fmt.Sprintf(`You are an interview coach analyzing video snapshots from a practice interview session. Analyze these %d snapshots taken throughout the interview and provide feedback.

Evaluate and score (0-100) each category:
1. Eye Contact: Are they looking at the camera (simulating eye contact with interviewer)?
2. Posture: Are they sitting up straight, professional positioning?
3. Facial Expression: Do they appear confident, engaged, friendly?
4. Framing: Are they well-positioned in frame, appropriate distance?
5. Background: Is it professional/clean, or distracting?
6. Overall Presence: Professional video interview presence

Return ONLY valid JSON:
{
  "eyeContact": { "score": 0-100, "feedback": "brief feedback" },
  "posture": { "score": 0-100, "feedback": "brief feedback" },
  "facialExpression": { "score": 0-100, "feedback": "brief feedback" },
  "framing": { "score": 0-100, "feedback": "brief feedback" },
  "background": { "score": 0-100, "feedback": "brief feedback" },
  "overallPresence": { "score": 0-100, "feedback": "brief feedback" },
  "topTip": "The single most important thing to improve",
  "overallVideoScore": 0-100
}`, sampleCount)
}
