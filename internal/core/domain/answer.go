package domain

// RetrievedChunk is a single retrieval hit: a chunk with its similarity
// score and the title of the document it came from.
type RetrievedChunk struct {
	// Chunk is the matched chunk with content attached.
	Chunk Chunk

	// DocumentTitle is the owning document's title, for citation.
	DocumentTitle string

	// Score is the cosine similarity to the question embedding.
	Score float64
}

// Answer is the composed response to a user question.
type Answer struct {
	// Text is the answer text produced by the LLM, or the designated
	// "not found" response when nothing was retrieved.
	Text string

	// Sources are the retrieved chunks the answer was grounded on,
	// in descending score order. Empty when Grounded is false.
	Sources []RetrievedChunk

	// Grounded is false when no relevant chunks were retrieved and the
	// answer is the designated fallback rather than model output.
	Grounded bool
}
