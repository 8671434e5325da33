package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/llm"
)

const tutorSystemPrompt = `You are an expert AI and Machine Learning tutor named 'Synapse'.
Your goal is to explain complex topics in the simplest way possible for a Telegram message.
You must follow the requested structure and formatting rules STRICTLY.`

const lessonPromptTemplate = `Today's topic is: %q

**STRUCTURE:**
1. **Simple Analogy:** Start with a simple, real-world analogy.
2. **Clear Explanation:** Give a concise, easy-to-read explanation.
3. **Diagram:** Create a flowchart diagram using Mermaid syntax. Enclose it in a markdown code block with the language set to 'mermaid'.
4. **Practical Example:** Provide a short, well-commented Python code snippet if applicable.
5. **Key Takeaway:** Summarize the most important point in one sentence.

**FORMATTING RULES:**
- Use ONLY these Markdown styles: *bold text* for bolding and _italic text_ for italics.
- Use backticks for code, like ` + "`print(\"Hello\")`" + `.
- DO NOT use Markdown headings (#), lists (- or *), or horizontal lines (---).`

const simplePromptTemplate = `Explain the following topic in a simple way for a beginner.
Topic: %q
Use very simple Markdown like *bold* or _italic_. Do not include any other complex formatting or code blocks.`

// Telegram rejects messages past 4096 characters; leave headroom for
// markdown escaping on the transport side.
const maxLessonTokens = 1024

// LessonGenerator produces the lesson text for a topic. In simple mode
// the prompt drops the structured sections and the diagram, for running
// the agent without a renderer.
type LessonGenerator struct {
	provider llm.Provider
	simple   bool
}

func NewLessonGenerator(provider llm.Provider, simple bool) *LessonGenerator {
	return &LessonGenerator{provider: provider, simple: simple}
}

// Lesson generates the lesson for the topic. The result is markdown
// restricted to bold, italic and inline code, possibly with a single
// mermaid fence in structured mode.
func (g *LessonGenerator) Lesson(ctx context.Context, topic string) (string, error) {
	prompt := fmt.Sprintf(lessonPromptTemplate, topic)
	if g.simple {
		prompt = fmt.Sprintf(simplePromptTemplate, topic)
	}
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:    tutorSystemPrompt,
		Prompt:    prompt,
		MaxTokens: maxLessonTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}
