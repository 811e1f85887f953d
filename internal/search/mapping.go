package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for photo documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on photo names with English stemming
//  2. Filename matching without stemming (filenames are not prose)
//  3. Exact keyword matching for tag and album filters
//  4. Numeric timestamps for sorting by recency
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Name field - primary search target
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// Filename - searchable with simple analyzer (no stemming)
	filenameFieldMapping := bleve.NewTextFieldMapping()
	filenameFieldMapping.Analyzer = simple.Name
	filenameFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("filename", filenameFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Tags - keyword analyzer keeps compound tags intact (e.g., "golden-hour")
	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = keyword.Name
	tagsFieldMapping.Store = true
	tagsFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	// Tags again, analyzed, so free-text queries hit them too.
	// Simple analyzer lowercases and splits compound tags.
	tagsTextFieldMapping := bleve.NewTextFieldMapping()
	tagsTextFieldMapping.Analyzer = simple.Name
	docMapping.AddFieldMappingsAt("tags_text", tagsTextFieldMapping)

	// Album IDs - for filtering search to one album
	albumIDsFieldMapping := bleve.NewTextFieldMapping()
	albumIDsFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("album_ids", albumIDsFieldMapping)

	// --- Numeric fields (sorting) ---

	uploadedAtFieldMapping := bleve.NewNumericFieldMapping()
	uploadedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("uploaded_at", uploadedAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
