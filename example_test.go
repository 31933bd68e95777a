package confluencesync_test

import (
	"context"
	"fmt"
	"log"

	confluencesync "github.com/eze-godoy/confluence-readme-sync"
)

// Example demonstrates converting a README with front matter into a
// Confluence page body.
func Example() {
	markdown := `---
title: Payments Service
labels:
  - runbook
---

## Restarting

   ` + "```bash" + `
   systemctl restart payments
   ` + "```" + `
`

	svc := confluencesync.New()
	result, err := svc.Convert(context.Background(), confluencesync.Input{
		Markdown: markdown,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Title)
	fmt.Println(result.Labels)
	// Output:
	// Payments Service
	// [runbook]
}
