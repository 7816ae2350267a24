package notes

import (
	"fmt"
	"strings"
)

// Static trailing sections of the notes document. The bullets are fixed
// boilerplate independent of the input; changing them changes the
// observable output contract.
const staticSections = `
## Additional Information
- Important details from the content
- Supporting facts and evidence
- Relevant context and background

## Takeaways
- Main conclusions or learnings
- Practical applications
- Key insights worth remembering
`

// buildNotes assembles the notes document from its computed parts.
func buildNotes(summary string, topics, keyPoints []string) string {
	var b strings.Builder

	b.WriteString("# Content Notes\n\n")

	b.WriteString("## Overview\n")
	b.WriteString(summary)
	b.WriteString("\n\n")

	b.WriteString("## Main Topics\n")
	topicLines := make([]string, len(topics))
	for i, topic := range topics {
		topicLines[i] = "- " + capitalize(topic)
	}
	b.WriteString(strings.Join(topicLines, "\n"))
	b.WriteString("\n\n")

	b.WriteString("## Key Points\n")
	rendered := keyPoints
	if len(rendered) > renderedKeyPoints {
		rendered = rendered[:renderedKeyPoints]
	}
	for i, point := range rendered {
		fmt.Fprintf(&b, "%d. %s\n", i+1, point)
	}

	b.WriteString(staticSections)
	return b.String()
}
