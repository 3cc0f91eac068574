package domain

// Meme is one meme image record.
type Meme struct {
	// URL locates the meme image.
	URL string
}

// MemeFeed is the ordered list of memes returned by a single fetch.
type MemeFeed []Meme

// Latest returns the last meme in the feed.
// The wall only ever displays the final record of a fetch; earlier
// records are superseded. Reports false for an empty feed.
func (f MemeFeed) Latest() (Meme, bool) {
	if len(f) == 0 {
		return Meme{}, false
	}

	return f[len(f)-1], true
}
