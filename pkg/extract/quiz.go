package extract

import "fmt"

// QuizPrompt builds the local quiz-generation prompt over extracted text.
// The output contract is a JSON object {"questions": Question[]} with three
// multiple-choice and two cloze questions, each carrying its answer,
// explanation, and the source line it was drawn from.
func QuizPrompt(extracted string) string {
	return fmt.Sprintf(`Create a 5-question quiz (3 multiple-choice + 2 cloze) from the body text below.
Include the correct answer, an explanation, and the supporting line from the text for each question, and return the whole result as JSON.
Return output in the form {"questions": Question[]}.
Question: {"type": "mcq|cloze", "question": string, "choices"?: string[], "answer": string, "explanation": string, "sourceText": string}
Body text:
%s`, extracted)
}
