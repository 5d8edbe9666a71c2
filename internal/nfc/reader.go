// Package nfc turns raw tag reads from the NFC reader collaborator into
// deduplicated card events for the input mediator.
package nfc

import (
	"context"
	"errors"

	"github.com/zargony/touch-n-drink/internal/models"
)

//go:generate moq -out reader_mock.go . Reader

// Reader is the NFC reader collaborator. ReadTag blocks until a tag is
// present, the reader's internal timeout elapses or ctx is cancelled.
type Reader interface {
	ReadTag(ctx context.Context) (models.TagID, error)
}

// Reader errors
var (
	// ErrTransient marks recoverable reader faults (short response buffers,
	// bus glitches, CRC errors). Retried a bounded number of times.
	ErrTransient = errors.New("nfc: transient read failure")

	// ErrNoTag indicates that no tag was presented within the reader's
	// timeout. Not an error condition, polling just continues.
	ErrNoTag = errors.New("nfc: no tag present")
)

// Event is one card event delivered to the input mediator: either a
// deduplicated tag read or a terminal read error.
type Event struct {
	Tag models.TagID
	Err error
}
