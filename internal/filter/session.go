package filter

import (
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/geovcs/spatialfilter/internal/core/model"
	"github.com/geovcs/spatialfilter/internal/envelope"
	"github.com/geovcs/spatialfilter/internal/observability"
	"github.com/geovcs/spatialfilter/internal/spatialindex"
)

// ErrBadFilterSpec means the filter argument could not be parsed or failed
// range checks. The enclosing clone/fetch must abort: the user asked for a
// filter, silently transferring everything instead is not acceptable.
var ErrBadFilterSpec = errors.New("bad spatial filter spec")

type State int

const (
	StateUninitialized State = iota
	StateActive
	StateClosed
)

type Config struct {
	// Spec is the host's filter argument, "W,S,E,N" in decimal degrees.
	Spec string
	// IndexPath locates the repository's spatial index file. A missing
	// file puts the session in pass-through mode.
	IndexPath string
	// ProgressEvery emits a progress event each time that many objects
	// have been examined. Zero disables progress output.
	ProgressEvery int
	// PathCacheSize bounds the per-directory path gate cache. Zero
	// disables the cache.
	PathCacheSize int
	Logger        zerolog.Logger
}

// Session drives blob classification across one host traversal. One session
// per host invocation; it is single-threaded by contract and holds the only
// open handle to the spatial index.
type Session struct {
	log   zerolog.Logger
	state State

	query       model.Rect
	fingerprint uint64

	index       *spatialindex.Index
	passThrough bool
	degraded    bool

	codec      envelope.Codec
	codecBound bool

	pathCache *lru.Cache[string, bool]

	examined      uint64
	matched       uint64
	omitted       uint64
	progressEvery uint64
	started       time.Time
}

// NewSession parses the filter spec and opens the spatial index. A bad spec
// fails closed; a missing or unopenable index fails open into pass-through
// mode, logged once.
func NewSession(cfg Config) (*Session, error) {
	query, err := model.ParseRect(cfg.Spec)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrBadFilterSpec, cfg.Spec, err)
	}

	s := &Session{
		log:         cfg.Logger,
		state:       StateActive,
		query:       query,
		fingerprint: xxhash.Sum64String(cfg.Spec),
		started:     time.Now(),
	}
	if cfg.ProgressEvery > 0 {
		s.progressEvery = uint64(cfg.ProgressEvery)
	}
	if cfg.PathCacheSize > 0 {
		// lru.New only fails on a non-positive size
		s.pathCache, _ = lru.New[string, bool](cfg.PathCacheSize)
	}

	mode := "indexed"
	ix, err := spatialindex.Open(cfg.IndexPath)
	if err != nil {
		s.passThrough = true
		mode = "passthrough"
		s.log.Warn().
			Str("index_path", cfg.IndexPath).
			Err(err).
			Msg("spatial index unavailable, filtering disabled for this run")
	} else {
		s.index = ix
	}
	observability.IncSession(mode)

	s.log.Debug().
		Stringer("query", query).
		Str("fingerprint", fmt.Sprintf("%016x", s.fingerprint)).
		Str("mode", mode).
		Msg("spatial filter session started")
	return s, nil
}

func (s *Session) State() State { return s.state }

// Query returns the parsed filter rectangle.
func (s *Session) Query() model.Rect { return s.query }

// FilterObject classifies one object from the host's pre-order walk.
// History and structural objects always pass; only feature blobs are
// candidates for omission. Never returns an error: index trouble degrades
// the session to pass-through for the rest of the run.
func (s *Session) FilterObject(sit Situation, objectID []byte, path string) Result {
	if s.state != StateActive {
		return MarkSeen | Show
	}

	switch sit {
	case SituationEndTree:
		// closes scope only, nothing to decide
		return 0
	case SituationCommit, SituationTag, SituationBeginTree:
		s.step(sit)
		return MarkSeen | Show
	case SituationBlob:
		s.step(sit)
		match, err := s.classifyBlob(objectID, path)
		if err != nil {
			s.degrade(err)
		}
		if !match {
			s.omitted++
			observability.IncOmitted()
			return MarkSeen | Omit
		}
		s.matched++
		observability.IncMatched()
		return MarkSeen | Show
	}
	return MarkSeen | Show
}

func (s *Session) step(sit Situation) {
	s.examined++
	observability.IncExamined(sit.String())
	if s.progressEvery > 0 && s.examined%s.progressEvery == 0 {
		s.log.Debug().
			Uint64("examined", s.examined).
			Uint64("matched", s.matched).
			Uint64("omitted", s.omitted).
			Msg("spatial filter progress")
	}
}

// degrade switches the session to pass-through after an index read or
// decode failure, mirroring the missing-index fallback. The remainder of
// the run transfers everything rather than failing the clone.
func (s *Session) degrade(err error) {
	if s.degraded {
		return
	}
	s.degraded = true
	s.passThrough = true
	s.log.Warn().
		Err(err).
		Uint64("examined", s.examined).
		Msg("spatial index read failed, filtering disabled for the rest of this run")
}

// Close releases the index handle and emits the final statistics record.
// Idempotent; called on every exit path, including aborted sessions.
func (s *Session) Close() error {
	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed

	var err error
	if s.index != nil {
		err = s.index.Close()
		s.index = nil
	}

	elapsed := time.Since(s.started)
	perSec := 0.0
	if elapsed > 0 {
		perSec = float64(s.examined) / elapsed.Seconds()
	}
	s.log.Info().
		Uint64("examined", s.examined).
		Uint64("matched", s.matched).
		Uint64("omitted", s.omitted).
		Bool("degraded", s.degraded).
		Str("fingerprint", fmt.Sprintf("%016x", s.fingerprint)).
		Dur("elapsed", elapsed).
		Float64("objects_per_sec", perSec).
		Msg("spatial filter session finished")
	return err
}
