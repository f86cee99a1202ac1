package service

import "fmt"

// interviewPromptTemplate pins the output contract: a tier-keyed JSON
// object, nothing else. The job title and description are appended
// verbatim so prompt changes stay auditable.
const interviewPromptTemplate = `You are an experienced technical interviewer who writes concise, practical interview questions with strong, succinct answers.
Generate question and answer pairs tailored to the role below, grouped by difficulty.
Return ONLY valid JSON with no code fences, no markdown and no text outside the JSON.
Schema: a single JSON object with exactly three keys "basic", "intermediate" and "expert".
Each key maps to an array of 5-10 objects, each with the keys "question" and "answer".
Example: {"basic": [{"question": "...", "answer": "..."}], "intermediate": [{"question": "...", "answer": "..."}], "expert": [{"question": "...", "answer": "..."}]}

Job Title: %s
Job Description: %s
`

// BuildInterviewPrompt renders the model instruction for a role.
// Pure function of its inputs; both are expected pre-trimmed and
// non-empty by the caller.
func BuildInterviewPrompt(jobTitle, jobDescription string) string {
	return fmt.Sprintf(interviewPromptTemplate, jobTitle, jobDescription)
}
