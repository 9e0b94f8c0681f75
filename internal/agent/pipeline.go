package agent

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Status tracks where an enrichment run is in the pipeline.
type Status string

const (
	StatusQueued      Status = "queued"
	StatusGathering   Status = "gathering"
	StatusStructuring Status = "structuring"
	StatusComplete    Status = "complete"
	StatusFailed      Status = "failed"
)

// Pipeline is the root orchestration object: the parallel gather stage
// followed by the structuring stage. A stage failure terminates the run;
// there are no retries between stages.
type Pipeline struct {
	gatherer   *Gatherer
	structurer *Structurer
}

// NewPipeline composes the gatherer and the structurer.
func NewPipeline(gatherer *Gatherer, structurer *Structurer) *Pipeline {
	return &Pipeline{gatherer: gatherer, structurer: structurer}
}

// Run drives one session's state through both stages.
func (p *Pipeline) Run(ctx context.Context, st *State) error {
	in := st.Inputs()
	log := zap.L().With(
		zap.String("company", in.CompanyName),
		zap.String("person", in.PersonName),
	)

	log.Info("pipeline: stage starting", zap.String("status", string(StatusGathering)))
	start := time.Now()
	if err := p.gatherer.Run(ctx, st); err != nil {
		log.Error("pipeline: gather stage failed",
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.Error(err),
		)
		return eris.Wrap(err, "pipeline: gather")
	}
	log.Info("pipeline: stage complete",
		zap.String("status", string(StatusGathering)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	log.Info("pipeline: stage starting", zap.String("status", string(StatusStructuring)))
	start = time.Now()
	if err := p.structurer.Run(ctx, st); err != nil {
		log.Error("pipeline: structuring stage failed",
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.Error(err),
		)
		return eris.Wrap(err, "pipeline: structure")
	}
	log.Info("pipeline: stage complete",
		zap.String("status", string(StatusStructuring)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
