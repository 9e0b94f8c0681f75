package agent

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Gatherer fans the research agents out against one session state and joins
// before the structuring stage may read their slots. The agents own disjoint
// write-once slots, so concurrent runs cannot conflict; if either agent
// fails, the whole gather stage fails.
type Gatherer struct {
	agents []*ResearchAgent
}

// NewGatherer creates a gatherer over the given research agents.
func NewGatherer(agents ...*ResearchAgent) *Gatherer {
	return &Gatherer{agents: agents}
}

// Run executes the setup step, then all research agents concurrently, and
// returns once every agent has finished or one has failed.
func (g *Gatherer) Run(ctx context.Context, st *State) error {
	// Setup step: the inputs are already an immutable snapshot on the state,
	// so there is nothing to copy; log the identifying pair before fan-out.
	in := st.Inputs()
	zap.L().Info("gatherer: processing lead",
		zap.String("company", in.CompanyName),
		zap.String("person", in.PersonName),
	)

	grp, gctx := errgroup.WithContext(ctx)
	for _, a := range g.agents {
		grp.Go(func() error {
			return a.Run(gctx, st)
		})
	}
	return grp.Wait()
}
