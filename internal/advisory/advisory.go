// Package advisory chains the conversational pipeline stages: language
// detection, intent classification, entity extraction, data enrichment and
// response synthesis. GenerateResponse is the single entry point; it never
// fails, degrading to a localized apology on any internal panic.
package advisory

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shamba-workers/internal/advisory/enrich"
	"shamba-workers/internal/advisory/intent"
	"shamba-workers/internal/advisory/language"
	"shamba-workers/internal/advisory/respond"
	"shamba-workers/internal/advisory/sentiment"
	"shamba-workers/internal/common/logger"
	"shamba-workers/internal/common/metrics"
	"shamba-workers/internal/datastore"
)

const tracerName = "shamba-workers/advisory"

// Result carries the synthesized reply plus the classification facts the
// worker layer reports back to the process instance.
type Result struct {
	Reply    string
	Language language.Language
	Intent   intent.Type
	Crop     string
	Location string
}

// GenerateResponse runs the full pipeline over one farmer message against
// a dataset snapshot. It always returns a non-empty reply: any panic in a
// downstream stage is converted to the localized apology for the language
// already detected.
func GenerateResponse(message string, snap datastore.Snapshot) string {
	return generate(message, snap).Reply
}

func generate(message string, snap datastore.Snapshot) (res Result) {
	lang := language.Detect(message)
	res.Language = lang

	defer func() {
		if r := recover(); r != nil {
			res.Reply = respond.Apology(lang)
			if res.Intent == "" {
				res.Intent = intent.General
			}
		}
	}()

	in := intent.Classify(message)
	res.Intent = in.Type
	res.Crop = in.Crop
	res.Location = in.Location

	// Clusters and insights are derived data. When the store does not carry
	// precomputed ones, recompute them from the raw reports for this turn.
	clusters := snap.Clusters
	if len(clusters) == 0 {
		clusters = sentiment.BuildClusters(snap.Reports)
	}
	insights := snap.Insights
	if len(insights) == 0 {
		insights = sentiment.BuildInsights(clusters)
	}

	bundle := enrich.Build(in.Crop, in.Location,
		snap.Markets, snap.Forecasts, snap.Warehouses, snap.Transporters)

	res.Reply = respond.Synthesize(in, lang, message, respond.Context{
		Bundle:   bundle,
		Reports:  snap.Reports,
		Clusters: clusters,
		Insights: insights,
	})
	return res
}

// Pipeline is the service-facing wrapper: it loads a fresh snapshot from
// the dataset store per request and records tracing and metrics around the
// pure pipeline core.
type Pipeline struct {
	data   datastore.Datasets
	logger logger.Logger
	tracer trace.Tracer
}

// NewPipeline builds a pipeline over the given dataset store.
func NewPipeline(data datastore.Datasets, log logger.Logger) *Pipeline {
	return &Pipeline{
		data:   data,
		logger: log,
		tracer: otel.Tracer(tracerName),
	}
}

// Respond answers one farmer message. Dataset loading is the only fallible
// step; once a snapshot is in hand the pipeline cannot fail.
func (p *Pipeline) Respond(ctx context.Context, message string) (Result, error) {
	ctx, span := p.tracer.Start(ctx, "advisory.respond")
	defer span.End()

	start := time.Now()

	snap, err := datastore.LoadSnapshot(ctx, p.data)
	if err != nil {
		metrics.DatasetLoadFailures.Inc()
		p.logger.Error("failed to load dataset snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		return Result{}, err
	}

	res := generate(message, *snap)

	span.SetAttributes(
		attribute.String("advisory.language", string(res.Language)),
		attribute.String("advisory.intent", string(res.Intent)),
	)
	metrics.ResponsesGenerated.WithLabelValues(string(res.Intent), string(res.Language)).Inc()
	metrics.ResponseDuration.WithLabelValues(string(res.Intent)).Observe(time.Since(start).Seconds())

	p.logger.Info("advisory response generated", map[string]interface{}{
		"language": string(res.Language),
		"intent":   string(res.Intent),
		"crop":     res.Crop,
		"location": res.Location,
	})
	return res, nil
}
