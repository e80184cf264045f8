package index

// PostingEntry records that a document contains a term and how often.
type PostingEntry struct {
	DocID         int // Document the term occurs in
	TermFrequency int // Raw count of the term within that document
}

// PostingList is a slice of PostingEntry ordered by DocID ascending.
type PostingList []PostingEntry

// DocIDs returns the document ids in the list.
func (pl PostingList) DocIDs() []int {
	ids := make([]int, len(pl))
	for i, entry := range pl {
		ids[i] = entry.DocID
	}
	return ids
}
