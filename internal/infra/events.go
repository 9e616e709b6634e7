package infra

import specs "github.com/chrisconley/trafficreport/specs"

// DetectionReceivedEvent carries a raw sensor payload before validation.
type DetectionReceivedEvent struct {
	Source  string
	Payload []byte
}

func (e DetectionReceivedEvent) EventType() EventType { return DetectionReceived }

// DetectionRecordedEvent is published after a detection has been stored.
type DetectionRecordedEvent struct {
	Detection specs.DetectionEventSpec
}

func (e DetectionRecordedEvent) EventType() EventType { return DetectionRecorded }

// DetectionRejectedEvent is published when a payload fails validation.
type DetectionRejectedEvent struct {
	Source string
	Reason string
}

func (e DetectionRejectedEvent) EventType() EventType { return DetectionRejected }

// ReportGeneratedEvent is published after a report has been assembled.
type ReportGeneratedEvent struct {
	Kind   string
	Report specs.ReportSpec
}

func (e ReportGeneratedEvent) EventType() EventType { return ReportGenerated }
