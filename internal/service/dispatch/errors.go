package dispatch

import "errors"

// ErrCandidateLoad means users or events could not be read and the tick was
// aborted before any pair was touched.
var ErrCandidateLoad = errors.New("failed to load reminder candidates")
