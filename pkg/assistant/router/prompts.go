package router

import (
	"fmt"
	"strings"

	"research-assistant-be/pkg/store"
)

// RefusalSentence is the exact sentence grounded answers must emit
// when the research context does not cover the question.
const RefusalSentence = "Not explicitly mentioned in the provided research summary."

// AdvisoryReply is returned when a fetched URL carries too little text
// to summarize faithfully.
const AdvisoryReply = "📄 A research paper URL was detected. Please upload the PDF version for accurate summarization."

// FailureMarker prefixes user-visible replies produced from a caught
// backend failure on the URL path.
const FailureMarker = "⚠️ "

// Word budgets keyed by summary length. Answers (general, grounded,
// fallback) use the tighter budget; summaries use the wider one.
var answerBudgets = map[string]string{
	store.LengthShort: "150-200 words",
	store.LengthLong:  "300-500 words",
}

var summaryBudgets = map[string]string{
	store.LengthShort: "250-300 words",
	store.LengthLong:  "600-800 words",
}

func answerBudget(length string) string {
	if b, ok := answerBudgets[length]; ok {
		return b
	}
	return answerBudgets[store.LengthShort]
}

func summaryBudget(length string) string {
	if b, ok := summaryBudgets[length]; ok {
		return b
	}
	return summaryBudgets[store.LengthShort]
}

func buildGeneralPrompt(question, length string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a helpful assistant. Answer the user's question in a single clear paragraph.\n")
	prompt.WriteString(fmt.Sprintf("Keep the answer within %s.\n", answerBudget(length)))
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<user_question>\n")
	prompt.WriteString(question)
	prompt.WriteString("\n</user_question>\n\n")

	prompt.WriteString("Answer:")
	return prompt.String()
}

func buildMethodologyPrompt() string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("The user is asking how you produced your previous research output.\n")
	prompt.WriteString("Explain your methodology in one paragraph: the source material was gathered\n")
	prompt.WriteString("(from an uploaded document, a fetched URL, or web search results), then\n")
	prompt.WriteString("condensed into a structured summary with references where available.\n")
	prompt.WriteString("Do not invent tools or steps you did not take.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("Explanation:")
	return prompt.String()
}

func buildGroundedPrompt(question, researchContext, length string) string {
	var prompt strings.Builder

	prompt.WriteString("<research_summary>\n")
	prompt.WriteString(researchContext)
	prompt.WriteString("\n</research_summary>\n\n")

	prompt.WriteString("<task>\n")
	prompt.WriteString("Answer the user's question using ONLY the research summary above.\n")
	prompt.WriteString("Do not use outside knowledge. Answer in one paragraph within ")
	prompt.WriteString(answerBudget(length))
	prompt.WriteString(".\n")
	prompt.WriteString(fmt.Sprintf("If the summary does not cover the question, reply with exactly: %q\n", RefusalSentence))
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<user_question>\n")
	prompt.WriteString(question)
	prompt.WriteString("\n</user_question>\n\n")

	prompt.WriteString("Answer:")
	return prompt.String()
}

func buildDocumentSummaryPrompt(documentText, length string) string {
	var prompt strings.Builder

	prompt.WriteString("<document>\n")
	prompt.WriteString(documentText)
	prompt.WriteString("\n</document>\n\n")

	prompt.WriteString("<task>\n")
	prompt.WriteString("Summarize the document above in ")
	prompt.WriteString(summaryBudget(length))
	prompt.WriteString(".\n")
	prompt.WriteString("End with a \"References\" section listing only sources that appear in the document.\n")
	prompt.WriteString("Never invent citations. If the document contains no references, write exactly: References not available\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("Summary:")
	return prompt.String()
}

func buildTopicSummaryPrompt(topic, length string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString(fmt.Sprintf("Write a research summary on the topic: %s\n", topic))
	prompt.WriteString("Keep the summary within ")
	prompt.WriteString(summaryBudget(length))
	prompt.WriteString(".\n")
	prompt.WriteString("End with a \"References\" section. Every reference MUST include a reachable URL.\n")
	prompt.WriteString("Never invent citations. If no real references are available, write exactly: References not available\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("Summary:")
	return prompt.String()
}

func buildFallbackPrompt(question string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("Give a short, factual answer to the user's question in a single paragraph.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<user_question>\n")
	prompt.WriteString(question)
	prompt.WriteString("\n</user_question>\n\n")

	prompt.WriteString("Answer:")
	return prompt.String()
}
