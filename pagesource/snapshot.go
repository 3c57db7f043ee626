// Package pagesource acquires HTML snapshots for inspection: a plain HTTP
// fetch for server-rendered pages, and a Rod-driven Chrome capture for pages
// whose shadow DOM only exists after client-side rendering.
package pagesource

import "time"

// Snapshot is one acquired page, ready for domtree.Parse.
type Snapshot struct {
	ID        string    `json:"id"`
	PageURL   string    `json:"page_url"`
	HTML      []byte    `json:"html"`
	FetchedAt time.Time `json:"fetched_at"`
}
