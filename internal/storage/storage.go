package storage

// URLStore is the hand-off point between the extractor and the
// submitters: an ordered list of absolute URLs, fully replaced on
// each Save.
type URLStore interface {
	// Save overwrites the stored list with urls.
	Save(urls []string) error
	// Load returns the stored list in order.
	Load() ([]string, error)
}
