package usecase

import (
	"context"

	"github.com/semmidev/bucketsync/internal/config"
	"github.com/semmidev/bucketsync/internal/domain"
)

const (
	probeOkTitle   = "Connection Test Succeeded!"
	probeOkMessage = "Everything seems properly set up!"
	probeErrTitle  = "Connection Test Failed!"
)

// Outcome is the result of checking one target's bucket access.
type Outcome struct {
	Target  string
	OK      bool
	Message string
}

// Notification renders the outcome for the notifier.
func (o Outcome) Notification() domain.Notification {
	if o.OK {
		return domain.Notification{
			Title:    probeOkTitle,
			Message:  probeOkMessage,
			Severity: domain.SeveritySuccess,
		}
	}
	return domain.Notification{
		Title:    probeErrTitle,
		Message:  o.Message,
		Severity: domain.SeverityDanger,
	}
}

// Probe checks that a target's credentials and bucket are usable. It is
// purely diagnostic: connect, one minimal listing call, nothing written.
type Probe struct {
	connect  ConnectFunc
	notifier domain.Notifier
	logger   Logger
}

func NewProbe(connect ConnectFunc, notifier domain.Notifier, logger Logger) *Probe {
	return &Probe{
		connect:  connect,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *Probe) Execute(ctx context.Context, target config.Target) Outcome {
	outcome := Outcome{Target: target.Name, OK: true}

	store, err := uc.connect(ctx, target)
	if err == nil {
		err = store.Ping(ctx)
	}
	if err != nil {
		outcome.OK = false
		outcome.Message = err.Error()
		uc.logger.Errorf("[%s] Connection test failed: %v", target.Name, err)
	} else {
		uc.logger.Infof("[%s] Connection test succeeded", target.Name)
	}

	uc.deliver(ctx, outcome)
	return outcome
}

func (uc *Probe) deliver(ctx context.Context, outcome Outcome) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Notify(ctx, outcome.Notification()); err != nil {
		uc.logger.Warnf("[%s] Failed to deliver notification: %v", outcome.Target, err)
	}
}
