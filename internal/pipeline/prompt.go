package pipeline

import (
	"fmt"
	"strings"

	"icondex/internal/scan"
)

// BuildPrompt renders the fixed instruction sent to the model for one
// icon. The template embeds the icon's name and any sidecar hints and
// pins the response shape: English only, 1-3 alternate names, a concise
// meaning-first description, at most 5 tags and 5 categories, no prose
// outside the structured result.
func BuildPrompt(sc *scan.Sidecar) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are labeling a vector icon named %q for a searchable icon dataset.\n", sc.Name)
	if len(sc.Tags) > 0 {
		fmt.Fprintf(&b, "Known tags: %s.\n", strings.Join(sc.Tags, ", "))
	}
	if len(sc.Categories) > 0 {
		fmt.Fprintf(&b, "Known categories: %s.\n", strings.Join(sc.Categories, ", "))
	}

	b.WriteString(`Look at the attached image and respond in English only.
Return:
- name: exactly the icon name given above.
- commonnames: 1 to 3 alternative names a designer might search for.
- description: one concise sentence describing what the icon depicts and what it means. Start with the meaning, not with "This icon" or "An icon of".
- tags: up to 5 short keywords, combining the known tags with new ones you propose.
- categories: up to 5 categories, combining the known categories with new ones you propose.
Do not add any text outside the structured result.`)

	return b.String()
}
