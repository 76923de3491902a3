package jobs

// JobQueue provides an abstraction for enqueueing background analytics work
type JobQueue interface {
	EnqueueRecompute(userID string) error
}
