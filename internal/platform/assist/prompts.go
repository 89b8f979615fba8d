package assist

import "fmt"

const triagePromptFmt = `You are a triage nurse assistant. Analyze these symptoms and suggest a triage level (Green, Yellow, Red, Black) with a brief 1-sentence justification and potential ICD-10 codes. Symptoms: %s`

const summaryPromptFmt = `Summarize the following clinical notes into a concise bulleted list for a doctor's quick review. Highlight critical vitals and diagnosis. Notes: %s`

// TriagePrompt builds the symptom analysis prompt.
func TriagePrompt(symptoms string) string {
	return fmt.Sprintf(triagePromptFmt, symptoms)
}

// SummaryPrompt builds the clinical notes summary prompt.
func SummaryPrompt(notes string) string {
	return fmt.Sprintf(summaryPromptFmt, notes)
}
