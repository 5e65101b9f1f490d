package dashwatch

import (
	"errors"
	"fmt"

	"github.com/daryllundy/gitlab-dashwatch-sub001/search"
)

var (
	// ErrRecordNotFound is returned by CacheGet on a miss, including reads
	// of entries that expired in place.
	ErrRecordNotFound = errors.New("record not found")

	// ErrSearchTimeout is returned when the search pipeline exceeds its
	// configured deadline. No partial result exists.
	ErrSearchTimeout = errors.New("search timed out")

	// ErrSavedSearchNotFound is returned for an unknown saved-search id.
	ErrSavedSearchNotFound = errors.New("saved search not found")
)

// translateError normalizes subpackage errors into the package-level
// sentinels so callers can errors.Is against a stable surface. The typed
// originals stay reachable via errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var te *search.ErrTimeout
	if errors.As(err, &te) {
		return fmt.Errorf("%w: %w", ErrSearchTimeout, err)
	}

	var nf *search.ErrSavedSearchNotFound
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %w", ErrSavedSearchNotFound, err)
	}

	return err
}
