package retrieval

import "github.com/poiesic/voyant/core"

// Monitor provides hooks to observe the retrieval pipeline.
// Implement this interface to track intermediate stage results.
type Monitor interface {
	Start(query string)
	AfterEmbedding(dimensions int)
	AfterVectorQuery(matches []core.VectorMatch)
	AfterIntentExtraction(intent core.Intent)
	AfterGraphQuery(facts []core.GraphFact)
	AfterFusion(ranks []core.FusedRank)
	Finish(evidence core.EvidenceSet)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                         {}
func (n *noopMonitor) AfterEmbedding(_ int)                   {}
func (n *noopMonitor) AfterVectorQuery(_ []core.VectorMatch)  {}
func (n *noopMonitor) AfterIntentExtraction(_ core.Intent)    {}
func (n *noopMonitor) AfterGraphQuery(_ []core.GraphFact)     {}
func (n *noopMonitor) AfterFusion(_ []core.FusedRank)         {}
func (n *noopMonitor) Finish(_ core.EvidenceSet)              {}
