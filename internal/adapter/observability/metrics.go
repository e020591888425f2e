package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of model API attempts by model and operation",
		},
		[]string{"model", "operation"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "Model API attempt duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"model", "operation"},
	)
	AIScoreParseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_rubric_score_parse_total",
			Help: "Rubric responses by whether an overall score could be parsed",
		},
		[]string{"parsed"},
	)

	// Evaluation outcome distributions, all on the 0..5 scale.
	RubricScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "evaluation_rubric_score",
			Help:    "Distribution of parsed rubric scores ([0,5])",
			Buckets: []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
		},
	)
	SemanticScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "evaluation_semantic_score",
			Help:    "Distribution of semantic similarity scores ([0,5])",
			Buckets: []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
		},
	)
	FusedScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "evaluation_fused_score",
			Help:    "Distribution of fused scores ([0,5])",
			Buckets: []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(AIRequestsTotal)
	prometheus.MustRegister(AIRequestDuration)
	prometheus.MustRegister(AIScoreParseTotal)
	prometheus.MustRegister(RubricScoreHistogram)
	prometheus.MustRegister(SemanticScoreHistogram)
	prometheus.MustRegister(FusedScoreHistogram)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		method := r.Method
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, method).Observe(dur)
	})
}

// ObserveAIScoreParse tracks how often rubric responses carry a parsable
// overall score.
func ObserveAIScoreParse(parsed bool) {
	if parsed {
		AIScoreParseTotal.WithLabelValues("true").Inc()
		return
	}
	AIScoreParseTotal.WithLabelValues("false").Inc()
}

// ObserveEvaluation records the scores of one completed answer evaluation.
func ObserveEvaluation(rubric, semantic, fused float64) {
	if rubric >= 0 && rubric <= 5 {
		RubricScoreHistogram.Observe(rubric)
	}
	if semantic >= 0 && semantic <= 5 {
		SemanticScoreHistogram.Observe(semantic)
	}
	if fused >= 0 && fused <= 5 {
		FusedScoreHistogram.Observe(fused)
	}
}
