// Package acl is the anti-corruption layer between the quote wall and the
// two public APIs it reads from.
//
// Each adapter owns the wire shape of its API, decodes it, and hands the
// application only domain types and domain errors:
//
//   - [QuoteClient] reads {"quote": "..."} from the quote endpoint.
//   - [MemeClient] reads [{"url": "..."}, ...] from the meme endpoint.
//
// Failures are translated by [MapHTTPError]: anything that means "the
// upstream cannot answer" becomes domain.ErrUnavailable. That includes
// every 4xx, since no caller input reaches either API.
package acl
