package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Reconciler periodically sweeps calendar orphans back onto their meeting
// records.
type Reconciler struct {
	cron    *cron.Cron
	booking *BookingService
	logger  *zerolog.Logger
}

// NewReconciler schedules the sweep every intervalMinutes.
func NewReconciler(booking *BookingService, intervalMinutes int, logger *zerolog.Logger) (*Reconciler, error) {
	c := cron.New()

	r := &Reconciler{
		cron:    c,
		booking: booking,
		logger:  logger,
	}

	spec := fmt.Sprintf("@every %dm", intervalMinutes)
	if _, err := c.AddFunc(spec, r.run); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Reconciler) run() {
	r.booking.ReconcileOrphans(context.Background())
}

func (r *Reconciler) Start() {
	r.logger.Info().Msg("Starting calendar orphan reconciler")
	r.cron.Start()
}

// Stop halts scheduling and waits for an in-flight sweep to finish.
func (r *Reconciler) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
