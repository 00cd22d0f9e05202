package domain

// RetrievalResult is one piece of context returned for a query.
// Results are ephemeral and never persisted.
type RetrievalResult struct {
	// Source names the document the text came from.
	Source string

	// Text is the chunk content.
	Text string

	// Partition records which store produced the result.
	Partition Partition

	// Score is the similarity reported by the partition.
	Score float64
}

// PartitionStats summarises one partition.
type PartitionStats struct {
	Partition Partition
	Entries   int
	Sources   int

	// Categories maps category label to entry count.
	// Entries without a category are counted under "".
	Categories map[string]int
}

// KnowledgeBaseStats summarises both partitions.
type KnowledgeBaseStats struct {
	Permanent PartitionStats
	Temporary PartitionStats
}
