// Package workers runs the background jobs of the sync client side by side
// and stops them together.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done or the job fails.
//
//	type Job struct{}
//
//	func (j *Job) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}
