// Package content holds the pieces shared by the image, video and book
// domains: the compound-operation error types and the MIME sniffing helper.
package content

import (
	"errors"
	"fmt"
	"strings"

	"mediaconsole/internal/blobstore"
	"mediaconsole/internal/recordstore"
)

// PartialFailure reports a compound delete where one half succeeded and the
// other failed. It names the failed side so the caller can retry just that
// part; no auto-retry happens here.
type PartialFailure struct {
	BlobErr   error
	RecordErr error
}

func (e *PartialFailure) Error() string {
	parts := make([]string, 0, 2)
	if e.BlobErr != nil {
		parts = append(parts, fmt.Sprintf("blob: %v", e.BlobErr))
	}
	if e.RecordErr != nil {
		parts = append(parts, fmt.Sprintf("record: %v", e.RecordErr))
	}
	return "partial failure: " + strings.Join(parts, "; ")
}

func (e *PartialFailure) Unwrap() []error {
	var errs []error
	if e.BlobErr != nil {
		errs = append(errs, e.BlobErr)
	}
	if e.RecordErr != nil {
		errs = append(errs, e.RecordErr)
	}
	return errs
}

// IsTransient reports whether err is a backend-unavailable failure the user
// can retry by resubmitting.
func IsTransient(err error) bool {
	return errors.Is(err, blobstore.ErrUnavailable) || errors.Is(err, recordstore.ErrUnavailable)
}
