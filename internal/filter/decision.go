package filter

import (
	"strings"
	"time"

	"github.com/geovcs/spatialfilter/internal/core/model"
	"github.com/geovcs/spatialfilter/internal/envelope"
	"github.com/geovcs/spatialfilter/internal/observability"
)

// Feature blobs live under a dataset's feature subtree. Two layouts exist:
// the legacy one and the current one; older repositories still use the
// legacy marker so both are honored.
const (
	legacyFeatureMarker  = ".sno-dataset/feature/"
	currentFeatureMarker = ".table-dataset/feature/"
)

func isFeaturePath(path string) bool {
	return strings.Contains(path, currentFeatureMarker) ||
		strings.Contains(path, legacyFeatureMarker)
}

// isFeatureDir answers isFeaturePath for the blob's directory, through the
// session's LRU. Tree paths repeat for every blob in a directory, so this
// sits on the hot path of large clones.
func (s *Session) isFeatureDir(path string) bool {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		// top-level blob, never inside a feature subtree
		return false
	}
	dir := path[:i+1]
	if s.pathCache != nil {
		if v, ok := s.pathCache.Get(dir); ok {
			return v
		}
	}
	v := isFeaturePath(dir)
	if s.pathCache != nil {
		s.pathCache.Add(dir, v)
	}
	return v
}

// classifyBlob decides whether one blob matches the query. It fails open:
// any state that prevents a definite answer (no index, unindexed object,
// lookup or decode failure) classifies as a match, so an omitted object is
// always one the index proved disjoint from the query. The error return is
// diagnostic; the match result is valid either way.
func (s *Session) classifyBlob(objectID []byte, path string) (bool, error) {
	if !s.isFeatureDir(path) {
		return true, nil
	}
	if s.passThrough || s.index == nil {
		return true, nil
	}

	start := time.Now()
	row, ok, err := s.index.Lookup(objectID)
	if err != nil {
		observability.ObserveLookup("error", time.Since(start).Seconds())
		return true, err
	}
	if !ok {
		observability.ObserveLookup("miss", time.Since(start).Seconds())
		return true, nil
	}
	observability.ObserveLookup("hit", time.Since(start).Seconds())

	rect, err := s.decodeRow(row)
	if err != nil {
		return true, err
	}
	return rect.Intersects(s.query), nil
}

// decodeRow decodes one envelope row, rebinding the cached codec when the
// row length changes. A single index build uses one precision throughout,
// so the rebind almost never fires after the first row.
func (s *Session) decodeRow(row []byte) (model.Rect, error) {
	if !s.codecBound || s.codec.EnvelopeSize() != len(row) {
		c, err := envelope.ForRow(row)
		if err != nil {
			return model.Rect{}, err
		}
		s.codec = c
		s.codecBound = true
	}
	return s.codec.Decode(row)
}
