// Package progress tracks orchestration phases and delivers them to a
// consumer without ever blocking the producer.
package progress

import (
	"sync"
	"time"

	"brandforge/internal/domain"
)

// Phase identifies a step of an orchestration run. Display text is left to
// the consumer.
type Phase string

const (
	PhaseAnalyzing        Phase = "analyzing"
	PhaseCategoryStarted  Phase = "category_started"
	PhaseAssetFinished    Phase = "asset_finished"
	PhaseCategoryFinished Phase = "category_finished"
	PhaseScoring          Phase = "scoring"
	PhaseCampaign         Phase = "campaign"
	PhaseFinalizing       Phase = "finalizing"
	PhaseComplete         Phase = "complete"
)

// Event is one progress notification. Percent never decreases within a run.
type Event struct {
	Phase    Phase            `json:"phase"`
	Category domain.AssetType `json:"category,omitempty"`
	Asset    string           `json:"asset,omitempty"`
	Percent  int              `json:"percent"`
	Done     int              `json:"done,omitempty"`
	Total    int              `json:"total,omitempty"`
	Time     time.Time        `json:"time"`
}

// Sink receives events. Implementations must return promptly.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Publish(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

const (
	analysisShare = 5
	assetsShare   = 85
	scoringShare  = 92
	campaignShare = 96
	finalShare    = 98
)

// Tracker turns orchestrator milestones into events with a running
// percentage: the analysis step, then per-category asset credit, then the
// closing phases. It is safe for concurrent use by asset workers.
type Tracker struct {
	mu      sync.Mutex
	sink    Sink
	order   []domain.AssetType
	totals  map[domain.AssetType]int
	done    map[domain.AssetType]int
	started map[domain.AssetType]bool
	last    int
	now     func() time.Time
}

// NewTracker prepares a tracker for the given per-category asset counts.
// Categories with zero assets are ignored.
func NewTracker(sink Sink, order []domain.AssetType, totals map[domain.AssetType]int) *Tracker {
	if sink == nil {
		sink = Discard
	}
	t := &Tracker{
		sink:    sink,
		totals:  map[domain.AssetType]int{},
		done:    map[domain.AssetType]int{},
		started: map[domain.AssetType]bool{},
		now:     time.Now,
	}
	for _, cat := range order {
		if totals[cat] > 0 {
			t.order = append(t.order, cat)
			t.totals[cat] = totals[cat]
		}
	}
	return t
}

// Analyzing marks the start of the run.
func (t *Tracker) Analyzing() {
	t.emit(Event{Phase: PhaseAnalyzing}, 0)
}

// AssetStarted emits category_started the first time a category's asset
// begins.
func (t *Tracker) AssetStarted(cat domain.AssetType) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started[cat] {
		return
	}
	t.started[cat] = true
	t.publishLocked(Event{Phase: PhaseCategoryStarted, Category: cat, Total: t.totals[cat]}, t.assetPercentLocked())
}

// AssetFinished credits one asset, successful or not, and emits
// category_finished when the category completes.
func (t *Tracker) AssetFinished(cat domain.AssetType, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done[cat] < t.totals[cat] {
		t.done[cat]++
	}
	pct := t.assetPercentLocked()
	t.publishLocked(Event{Phase: PhaseAssetFinished, Category: cat, Asset: name, Done: t.done[cat], Total: t.totals[cat]}, pct)
	if t.done[cat] == t.totals[cat] {
		t.publishLocked(Event{Phase: PhaseCategoryFinished, Category: cat, Done: t.done[cat], Total: t.totals[cat]}, pct)
	}
}

func (t *Tracker) Scoring()    { t.emit(Event{Phase: PhaseScoring}, scoringShare) }
func (t *Tracker) Campaign()   { t.emit(Event{Phase: PhaseCampaign}, campaignShare) }
func (t *Tracker) Finalizing() { t.emit(Event{Phase: PhaseFinalizing}, finalShare) }
func (t *Tracker) Complete()   { t.emit(Event{Phase: PhaseComplete}, 100) }

// Percent returns the last emitted percentage.
func (t *Tracker) Percent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

func (t *Tracker) emit(e Event, pct int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.publishLocked(e, pct)
}

func (t *Tracker) publishLocked(e Event, pct int) {
	if pct < t.last {
		pct = t.last
	}
	if pct > 100 {
		pct = 100
	}
	t.last = pct
	e.Percent = pct
	e.Time = t.now()
	t.sink.Publish(e)
}

// assetPercentLocked averages per-category completion fractions and maps the
// result onto the asset share of the bar.
func (t *Tracker) assetPercentLocked() int {
	if len(t.order) == 0 {
		return analysisShare
	}
	var sum float64
	for _, cat := range t.order {
		sum += float64(t.done[cat]) / float64(t.totals[cat])
	}
	frac := sum / float64(len(t.order))
	return analysisShare + int(frac*float64(assetsShare-analysisShare))
}
