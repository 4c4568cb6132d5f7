package prompts

import "fmt"

// QuestionCount is the fixed number of main questions per interview.
const QuestionCount = 5

// BuildQuestionPrompt renders the question-generation prompt for a job
// posting. The description is optional.
func BuildQuestionPrompt(jobTitle, jobDescription string) string {
	if jobDescription == "" {
		jobDescription = "General role responsibilities"
	}

	return fmt.Sprintf(`You are a hiring manager at a top company conducting a behavioral interview.

JOB TITLE: %s
JOB DESCRIPTION: %s

STEP 1: Identify the 3-5 most critical skills for success in THIS specific role based on the job title and description.

STEP 2: Generate exactly 5 interview questions.

QUESTION MIX:
- 3 behavioral questions ("Tell me about a time...")
- 1 situational question ("What would you do if...")
- 1 role-specific question (directly tests a key skill for this job)

HARD RULES - DO NOT BREAK:

1. LENGTH: Each question MUST be 10-25 words. Count the words. If over 25, rewrite shorter.

2. FORMAT: One clear question. No multi-part questions. No "and also". No bullet points.

3. TONE: Sound like a real person speaking, not a textbook.
   USE: "Tell me about a time...", "Walk me through...", "Give me an example of...", "What would you do if..."
   AVOID: "Describe a scenario in which...", "Please elaborate on...", academic jargon

4. ONE SKILL PER QUESTION: Each question tests exactly ONE thing relevant to this role.

5. MAKE IT UNCOMFORTABLE: Questions should require real examples, probe challenges/failures/conflicts. No softball questions.

GOOD EXAMPLES:
- "Tell me about a time you failed at something. What happened?" (12 words)
- "Walk me through a project that didn't go as planned." (11 words)
- "Give me an example of when you disagreed with your manager." (12 words)
- "What would you do if a teammate wasn't pulling their weight?" (12 words)

BAD EXAMPLES (too long/complex):
- "Can you describe a situation where you had to work with multiple stakeholders who had competing priorities and explain how you managed to balance their needs while delivering the project on time?" (TOO LONG - 34 words)

Return ONLY a JSON array of exactly 5 question strings:
["question1", "question2", "question3", "question4", "question5"]`, jobTitle, jobDescription)
}

// FallbackQuestions is the fixed set substituted when generation fails; the
// interview is never blocked by a generation failure.
func FallbackQuestions(jobTitle string) []string {
	return []string{
		fmt.Sprintf("Tell me about a challenging project you led that's relevant to the %s role.", jobTitle),
		fmt.Sprintf("What technical skills do you bring to this %s position?", jobTitle),
		"Describe a time you had to solve a complex problem under pressure.",
		"How do you collaborate with cross-functional teams?",
		"Why are you interested in this role and what motivates you?",
	}
}
