package interviewsrv

import "fmt"

const (
	firstQuestionSystem = "You are simulating a job interview."
	followUpSystem      = "You are a professional technical interviewer."
	feedbackSystem      = "You are an expert at evaluating interview answers."
	scriptSystem        = "You are preparing a structured job interview."
)

func firstQuestionPrompt(role string) string {
	return fmt.Sprintf(`You are a professional interviewer for the role of %s.
Start the interview by asking the first technical or behavioral question.

The question should NOT be trivial. It must assess the candidate's core knowledge in this role
and be challenging enough to differentiate strong candidates from average ones.

Do NOT include any feedback or explanation. Return just the question.`, role)
}

func scriptPrompt(role string, n int) string {
	return fmt.Sprintf(`Write %d interview questions for a %s position.
Mix technical and behavioral questions and order them from foundational to advanced.
Each question must be specific to the %s role and not generic.

Return only a JSON array of %d strings, with no numbering, markdown or commentary.`, n, role, role, n)
}

func followUpPrompt(role, question, answer string) string {
	return fmt.Sprintf(`You are a technical interviewer for a %s position.

The candidate answered:
%q
to the question:
%q

Your task is to determine the most appropriate next question.

- If the answer is vague, incorrect, or missing key points, ask a follow-up question that clarifies or probes deeper.
- If the answer is correct, complete and shows clear understanding, ask a new relevant question that explores a related or next-level topic specific to the %s role.

Avoid repeating the same topic. Keep the question technical and focused.

Return only one clear and relevant question.`, role, answer, question, role)
}

func feedbackPrompt(role, question, answer string) string {
	return fmt.Sprintf(`You are a technical interviewer for a %s position.

The candidate answered:
%q
to the question:
%q

Give clear and constructive feedback.

- If the answer is correct but could be improved, point out how.
- If the answer is incorrect or incomplete, explain why.
- Provide the correct explanation or concept.
- Suggest how the candidate could have answered better.

Your response should be 2 to 4 sentences. Return only the feedback and do not repeat the question or answer.`, role, answer, question)
}
