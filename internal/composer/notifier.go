package composer

import "go.uber.org/zap"

const (
	MessagePublished     = "Created Post successfully!"
	MessagePublishFailed = "Failed to publish post."
)

// Notifier surfaces the outcome of a submission to the user.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

type logNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Success(msg string) {
	n.log.Info(msg)
}

func (n *logNotifier) Failure(msg string) {
	n.log.Error(msg)
}
