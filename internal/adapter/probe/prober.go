package probe

import (
	"context"
	"time"

	"github.com/vadimbarashkov/router-monitor/internal/entity"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 16

type probeClient interface {
	Probe(ctx context.Context, target entity.ProbeTarget) entity.ProbeOutcome
}

// Prober runs a probe client over many targets with bounded concurrency.
type Prober struct {
	client      probeClient
	concurrency int
}

// NewProber creates a prober running at most concurrency probes at once.
// A non-positive concurrency falls back to the default of 16.
func NewProber(client probeClient, concurrency int) *Prober {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Prober{
		client:      client,
		concurrency: concurrency,
	}
}

// ProbeAll probes every target and returns exactly one outcome per target, in
// the order of targets. A failing or hanging target only affects its own outcome.
//
// Targets that have not started when ctx is done get a canceled outcome
// without any network call. Probes already in flight run to their own timeout.
func (p *Prober) ProbeAll(ctx context.Context, targets []entity.ProbeTarget) []entity.ProbeOutcome {
	outcomes := make([]entity.ProbeOutcome, len(targets))

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, target := range targets {
		i, target := i, target
		if ctx.Err() != nil {
			outcomes[i] = canceledOutcome(target)
			continue
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				outcomes[i] = canceledOutcome(target)
				return nil
			}

			outcomes[i] = p.client.Probe(ctx, target)
			return nil
		})
	}

	_ = g.Wait()

	return outcomes
}

func canceledOutcome(target entity.ProbeTarget) entity.ProbeOutcome {
	return entity.ProbeOutcome{
		RouterID:  target.RouterID,
		CheckedAt: time.Now().UTC(),
		ErrorKind: entity.ErrorKindCanceled,
	}
}
