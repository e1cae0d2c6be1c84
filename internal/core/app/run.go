package app

import (
	"context"
	"log/slog"
	"time"

	"docfixer/internal/core/errors"
	"docfixer/internal/data/contract"
	"docfixer/internal/data/docstore"
	"docfixer/internal/engine/classify"
	"docfixer/internal/engine/synth"
	"docfixer/internal/shared/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// run is the state of a single pass. Nothing in it outlives Run.
type run struct {
	log     *slog.Logger
	locator *docstore.Locator
	state   *synth.State
	synth   *synth.Synthesizer
	report  *Report
}

// Run visits every selected type once, synthesizes documentation into the
// loaded trees and saves them. Per-member and per-type failures are logged
// and counted in the report; only cancellation ends a run early.
func (a *App) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	runID := uuid.NewString()

	ctx, span := observability.Tracer.Start(ctx, "app.Run", trace.WithAttributes(attribute.String("run_id", runID)))
	defer span.End()

	log := a.Logger.With("run_id", runID)
	locator := docstore.NewLocator(a.DocRoot, a.Config.Naming.CompanionSuffix, a.Storage)
	state := synth.NewState()
	r := &run{
		log:     log,
		locator: locator,
		state:   state,
		synth:   synth.New(a.Config, locator, a.Miner, state, log),
		report:  newReport(runID),
	}

	probe := a.Config.Merge.Enabled && a.Config.Merge.Debug && a.Miner != nil
	for _, t := range a.Contract.Types() {
		if err := ctx.Err(); err != nil {
			return *r.report, err
		}
		// Probing covers the whole contract; the type filter only narrows
		// synthesis.
		if probe {
			r.report.Types++
			observability.TypesProcessedTotal.Inc()
			if !a.Miner.HasDocsFor(t) {
				log.Info("no corpus documentation for type", "type", t.FullName())
				r.report.Undocumented = append(r.report.Undocumented, t.FullName())
			}
			continue
		}
		if !a.matcher.Match(t.FullName()) {
			continue
		}
		r.report.Types++
		observability.TypesProcessedTotal.Inc()
		a.processType(ctx, r, t)
	}

	for _, use := range state.NotificationUses() {
		log.Debug("notification use", "event_args", use.EventArgs.FullName(), "users", len(use.Users))
	}

	log.Info("saving", "documents", len(locator.Loaded()))
	saved, err := locator.SaveAll()
	r.report.Saved = saved
	observability.DocumentsSavedTotal.WithLabelValues("primary").Add(float64(len(saved)))
	if err != nil {
		log.Error("failed to save documentation", "error", err)
		r.report.skip(err)
	}

	r.report.Duration = time.Since(start)
	observability.RunDuration.Observe(r.report.Duration.Seconds())
	if path := a.Config.Observability.MetricsFile; path != "" {
		if err := observability.WriteTextfile(path); err != nil {
			log.Warn("failed to write metrics file", "path", path, "error", err)
		}
	}
	return *r.report, nil
}

func (a *App) processType(ctx context.Context, r *run, t *contract.Type) {
	_, span := observability.Tracer.Start(ctx, "app.processType", trace.WithAttributes(attribute.String("type", t.FullName())))
	defer span.End()

	var members []classify.Result
	for _, p := range t.Properties {
		res := a.classifier.Classify(p)
		if res.Kind == classify.Plain {
			continue
		}
		members = append(members, res)
	}
	if len(members) == 0 && !t.HasEvents() {
		return
	}
	r.log.Debug("processing type", "type", t.FullName(), "members", len(members), "events", t.HasEvents())

	tree, err := r.locator.Primary(t)
	if err != nil {
		r.log.Warn("missing documentation for type", "type", t.FullName(), "path", r.locator.PathFor(t, false), "error", err)
		r.report.skip(err)
		return
	}

	for _, m := range members {
		r.report.Members++
		err := r.synth.ProcessField(t, tree, m)
		r.report.skip(err)
		if errors.IsCode(err, errors.CodeStaleDocument) || m.Kind != classify.Notification {
			continue
		}
		r.report.Notifications++
		r.report.skip(r.synth.ProcessNotification(t, tree, m))
	}

	updated, missing := r.synth.PopulateEvents(t, tree)
	r.report.Events += updated
	if missing > 0 {
		r.report.Skips[errors.CodeStaleDocument] += missing
	}
}
