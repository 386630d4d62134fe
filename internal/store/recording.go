package store

import (
	"github.com/sirupsen/logrus"

	"github.com/communitybig/kernelctl/internal/runner"
)

// RecordingSink tees a runner event stream into the history store while
// forwarding everything to the next sink. Storage failures are logged
// and ignored; auditing must never break a running operation.
type RecordingSink struct {
	store       *Store
	operationID int64
	next        runner.Sink
	seq         int
}

// NewRecordingSink wraps next so that every output line lands in the
// transcript table and the final result closes the operation row.
func NewRecordingSink(s *Store, operationID int64, next runner.Sink) *RecordingSink {
	return &RecordingSink{store: s, operationID: operationID, next: next}
}

// Progress implements runner.Sink.
func (r *RecordingSink) Progress(fraction float64, status string) {
	r.next.Progress(fraction, status)
}

// OutputLine implements runner.Sink.
func (r *RecordingSink) OutputLine(line string) {
	r.seq++
	if err := r.store.AppendLine(r.operationID, r.seq, line); err != nil {
		logrus.WithError(err).Debug("failed to record transcript line")
	}
	r.next.OutputLine(line)
}

// Complete implements runner.Sink.
func (r *RecordingSink) Complete(success bool) {
	if err := r.store.FinishOperation(r.operationID, success); err != nil {
		logrus.WithError(err).Debug("failed to record operation outcome")
	}
	r.next.Complete(success)
}
