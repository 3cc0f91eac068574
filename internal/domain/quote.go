// Package domain contains core business entities and rules.
package domain

// Quote is a single quotation shown on the wall.
// It has no knowledge of the service it came from.
type Quote struct {
	// Text is the quotation itself.
	Text string
}
