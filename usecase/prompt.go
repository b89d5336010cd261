package usecase

import (
	"strings"
	"text/template"
)

// PromptFields are the named slots of the persona template.
type PromptFields struct {
	Context string
	Message string
}

// The template is parsed once; field values are inserted as data and never
// re-parsed, so delimiters inside them stay literal.
var personaTemplate = template.Must(template.New("persona").Parse(`
You are a helpful and professional support assistant for the DLMS (Decentralized Learning Management System).
Your goal is to assist students and instructors with platform-related inquiries using the provided Context.

RULES:
1. Use the provided Context to answer technical or course-related questions.
2. If the user asks a polite social question (e.g., "How are you?", "Hello"), reply politely and professionally, then briefly steer them back to the platform.
   - Example: "I am functioning perfectly, thank you. How can I assist you with your courses today?"
3. If the user asks something completely irrelevant (e.g., "Tell me a joke", "What is the capital of Venezuela?"), politely decline.
   - Example: "I apologize, but I am designed to assist only with DLMS-related queries. Do you have a question about a course?"
4. Maintain a formal and courteous tone at all times. Do not use emojis or slang.
5. If the answer is not in the context, state that you do not have that information.

CONTEXT_DATA:
{{.Context}}

USER MESSAGE:
{{.Message}}
`))

// ComposePrompt renders the persona template with the given fields.
func ComposePrompt(f PromptFields) (string, error) {
	var b strings.Builder
	if err := personaTemplate.Execute(&b, f); err != nil {
		return "", err
	}
	return b.String(), nil
}

var structureMarkers = []string{"{{", "}}", "CONTEXT_DATA:", "USER MESSAGE:"}

// HasStructureMarkers reports whether s contains template delimiters or the
// template's own section headings. It is only used to flag such input in logs.
func HasStructureMarkers(s string) bool {
	for _, m := range structureMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
