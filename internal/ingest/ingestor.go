package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisconley/trafficreport/internal/infra"
	"github.com/chrisconley/trafficreport/internal/source"
	specs "github.com/chrisconley/trafficreport/specs"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ingestor validates payloads, stores the resulting detections and announces
// them on the bus.
type Ingestor struct {
	store source.Recorder
	bus   *infra.Bus
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

func NewIngestor(store source.Recorder, bus *infra.Bus, log *zap.Logger) *Ingestor {
	return &Ingestor{
		store: store,
		bus:   bus,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// SetClock replaces the receipt clock.
func (i *Ingestor) SetClock(now func() time.Time) {
	i.now = now
}

// Ingest handles one payload from origin ("http", "kafka", ...). Validation
// failures wrap ErrInvalidPayload.
func (i *Ingestor) Ingest(ctx context.Context, origin string, body []byte) (specs.DetectionEventSpec, error) {
	i.bus.Publish(infra.DetectionReceivedEvent{Source: origin, Payload: body})

	detection, err := ParsePayload(body, i.now().UTC(), i.newID())
	if err != nil {
		i.bus.Publish(infra.DetectionRejectedEvent{Source: origin, Reason: err.Error()})
		return specs.DetectionEventSpec{}, err
	}

	if err := i.store.Record(ctx, detection); err != nil {
		return specs.DetectionEventSpec{}, fmt.Errorf("record detection: %w", err)
	}

	i.bus.Publish(infra.DetectionRecordedEvent{Detection: detection})
	i.log.Debug("detection recorded",
		zap.String("id", detection.ID),
		zap.String("origin", origin),
		zap.String("direction", detection.Direction),
		zap.String("vehicle_type", detection.VehicleType),
	)
	return detection, nil
}
