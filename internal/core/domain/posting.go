package domain

// PostingResult is the two-phase outcome of a post or void: the journal entry
// change is durable, and LedgerSynced tells whether the projection followed.
type PostingResult struct {
	Entry        *JournalEntry `json:"entry"`
	LedgerSynced bool          `json:"ledgerSynced"`
}
