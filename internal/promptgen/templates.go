// Package promptgen builds the prompts sent to the generative model and
// decides which generation strategy a request gets.
package promptgen

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
)

// RoleOnlyPrompt is the cold-start / fallback prompt parameterized only by
// the target role.
func RoleOnlyPrompt(targetRole string) string {
	return fmt.Sprintf(`You are an expert technical interviewer for tech companies.
Your task is to generate challenging and insightful interview questions for a specific job role.

The candidate is applying for this role: %s

Generate 3 behavioral questions and 3 technical questions that are highly relevant for this role. The questions should be general enough to not require a resume, but specific enough to effectively test a candidate's qualifications for the position.

Please output the questions in this exact format:
BEHAVIORAL QUESTIONS:
1. [Question 1]
2. [Question 2]
3. [Question 3]

TECHNICAL QUESTIONS:
1. [Question 1]
2. [Question 2]
3. [Question 3]`, targetRole)
}

// RewrapPrompt instructs the model to personalize retrieved standard
// questions against the structured resume context.
func RewrapPrompt(resumeContext string, retrieved []domain.QuestionRecord) string {
	var qs strings.Builder
	for i, q := range retrieved {
		fmt.Fprintf(&qs, "%d. [%s/%s] %s\n", i+1, q.Category, q.Skill, q.Question)
	}
	return fmt.Sprintf(`You are an expert technical interviewer at a top tech company.
Your task is to rewrite a given set of standard interview questions to be highly specific and personalized to the candidate's resume.

CANDIDATE'S RESUME (Structured):
----------------------------
%s
----------------------------

STANDARD QUESTIONS TO PERSONALIZE:
----------------------------
%s----------------------------

Please rewrite and tailor each of the standard questions. Ground your new questions in the candidate's specific projects, experiences, and skills listed in their resume.

For example, if the standard question is "Tell me about a challenging project" and the resume mentions a "customer churn prediction model using PyTorch", a good rewritten question would be: "In your project on customer churn prediction, what were the most significant technical challenges you faced while implementing the PyTorch model?"

Output the rewritten questions in the same format as before:
BEHAVIORAL QUESTIONS:
1. [Rewritten Question 1]
...

TECHNICAL QUESTIONS:
1. [Rewritten Question 1]
...`, resumeContext, qs.String())
}

// ReferenceAnswerPrompt asks for an ideal, textbook-quality answer tailored
// to the candidate's resume.
func ReferenceAnswerPrompt(question, resumeContext string) string {
	return fmt.Sprintf(`As a senior technical interviewer, provide an ideal, textbook-quality answer for the following interview question.
The answer should be tailored to the candidate's resume for context.
Use the STAR method for behavioral questions. Be clear and concise.

QUESTION: "%s"

CANDIDATE'S RESUME CONTEXT:
---
%s
---

IDEAL ANSWER:`, question, resumeContext)
}

// EvaluationPrompt is the rubric evaluation prompt. The model is asked for
// an "Overall Score: X/5" token which the gateway parses afterwards.
func EvaluationPrompt(question, userAnswer, resumeContext string) string {
	return fmt.Sprintf(`You are an experienced interview coach. Evaluate the following interview answer based on these criteria:

**QUESTION:** %s

**USER'S ANSWER:** %s

**RESUME CONTEXT:** %s

**EVALUATION CRITERIA:**
1. **STAR Method (Situation, Task, Action, Result):** Does the answer follow this structure?
2. **Relevance:** Does the answer directly address the question and use examples from the resume?
3. **Clarity:** Is the answer concise and easy to understand?
4. **Technical Accuracy** (for technical questions): Is the information correct?
5. **Impact:** Does the answer demonstrate meaningful results or learning?

**Please provide evaluation in this exact format:**
- STAR Score: [score]/5
- Relevance Score: [score]/5
- Clarity Score: [score]/5
- Technical Accuracy: [score]/5 (if technical) or N/A
- Impact Score: [score]/5
- Overall Score: [average]/5

**Detailed Feedback:**
[Your constructive feedback here]

**Improved Answer Example:**
[Provide a better version of the answer]`, question, userAnswer, resumeContext)
}
