/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics defines the interface for collecting archive metrics. This
// decouples callers from the Prometheus implementation.
type Metrics interface {
	// IncArchiveOp counts a Get or Put against a store with its result,
	// one of ResultOK, ResultNotFound or ResultError.
	IncArchiveOp(op string, store string, result string)
	ObserveDocumentBytes(op string, n int)
	IncTournamentsLoaded(tournamentType string)
}

const (
	OpGet = "get"
	OpPut = "put"

	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Service holds the Prometheus metrics.
type Service struct {
	ArchiveOps        *prometheus.CounterVec
	DocumentBytes     *prometheus.HistogramVec
	TournamentsLoaded *prometheus.CounterVec
}

var _ Metrics = (*Service)(nil)

// NewService creates and registers the Prometheus metrics. If no registerer
// is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ArchiveOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "enginetourney_archive_operations_total",
			Help: "The total number of archive operations by store and result.",
		}, []string{"op", "store", "result"}),
		DocumentBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enginetourney_document_bytes",
			Help:    "The size of tournament documents read from or written to an archive.",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		}, []string{"op"}),
		TournamentsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "enginetourney_tournaments_loaded_total",
			Help: "The total number of tournaments successfully loaded by type.",
		}, []string{"type"}),
	}

	reg.MustRegister(
		s.ArchiveOps,
		s.DocumentBytes,
		s.TournamentsLoaded,
	)

	return s
}

func (s *Service) IncArchiveOp(op string, store string, result string) {
	s.ArchiveOps.WithLabelValues(op, store, result).Inc()
}

func (s *Service) ObserveDocumentBytes(op string, n int) {
	s.DocumentBytes.WithLabelValues(op).Observe(float64(n))
}

func (s *Service) IncTournamentsLoaded(tournamentType string) {
	s.TournamentsLoaded.WithLabelValues(tournamentType).Inc()
}

// Nop discards all metrics.
type Nop struct{}

var _ Metrics = Nop{}

func (Nop) IncArchiveOp(string, string, string) {}
func (Nop) ObserveDocumentBytes(string, int)    {}
func (Nop) IncTournamentsLoaded(string)         {}
