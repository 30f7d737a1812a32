/*
Package search provides full-text search over learning entries.

The index is an in-memory Bleve index built from the loaded entry logs;
the logs are small, so rebuilding per process (or per request on the
server) is cheap and keeps the index trivially consistent with the files.
*/
package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/khanglvm/skillhub/internal/learning"
)

// Result is one search hit.
type Result struct {
	Entry *learning.Entry `json:"entry"`
	Score float64         `json:"score"`
}

// Index is an in-memory full-text index over entries.
type Index struct {
	bleveIndex bleve.Index
	byID       map[string]*learning.Entry
}

// NewIndex builds an index over the given entries.
func NewIndex(entries []*learning.Entry) (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	idx := &Index{
		bleveIndex: index,
		byID:       make(map[string]*learning.Entry, len(entries)),
	}

	batch := index.NewBatch()
	for _, e := range entries {
		id := docID(e)
		doc := map[string]interface{}{
			"title":   e.Title,
			"details": e.Details,
			"source":  string(e.Source),
			"status":  string(e.DisplayStatus()),
		}
		if err := batch.Index(id, doc); err != nil {
			return nil, fmt.Errorf("failed to index entry %s: %w", id, err)
		}
		idx.byID[id] = e
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to batch index entries: %w", err)
	}

	return idx, nil
}

// docID addresses an entry within the index. Legacy entries have no
// fingerprint, so the title stands in.
func docID(e *learning.Entry) string {
	if e.Fingerprint != "" {
		return string(e.Source) + "/" + e.Fingerprint
	}
	return string(e.Source) + "/" + e.Title
}

// buildIndexMapping creates the Bleve index mapping for entry documents.
func buildIndexMapping() mapping.IndexMapping {
	entryMapping := bleve.NewDocumentMapping()

	entryMapping.AddFieldMappingsAt("title", bleve.NewTextFieldMapping())
	entryMapping.AddFieldMappingsAt("details", bleve.NewTextFieldMapping())
	entryMapping.AddFieldMappingsAt("source", bleve.NewTextFieldMapping())
	entryMapping.AddFieldMappingsAt("status", bleve.NewTextFieldMapping())

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", entryMapping)
	return indexMapping
}

// Search runs a match query over the index and returns up to limit hits,
// best first.
func (i *Index) Search(queryText string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	query := bleve.NewMatchQuery(queryText)
	req := bleve.NewSearchRequestOptions(query, limit, 0, false)

	res, err := i.bleveIndex.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		entry, ok := i.byID[hit.ID]
		if !ok {
			continue
		}
		results = append(results, Result{Entry: entry, Score: hit.Score})
	}
	return results, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.bleveIndex.Close()
}
