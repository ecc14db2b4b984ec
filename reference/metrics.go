/*
 * metrics.go, part of refchem.
 *
 * Copyright 2024 The refchem authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package reference

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons for skipping a species in Load.
const (
	skipIncomplete = "incomplete"
	skipDuplicate  = "duplicate"
)

// loadMetrics are the collectors of a Database. With a nil registerer
// they still count, but nobody can scrape them.
type loadMetrics struct {
	// loaded counts the species accepted into a set.
	loaded prometheus.Counter
	// skipped counts the species left out of a set.
	// Labels: reason (incomplete, duplicate)
	skipped *prometheus.CounterVec
	// sets is the number of loaded reference sets.
	sets prometheus.Gauge
}

func newLoadMetrics(reg prometheus.Registerer) *loadMetrics {
	f := promauto.With(reg)
	return &loadMetrics{
		loaded: f.NewCounter(prometheus.CounterOpts{
			Namespace: "refchem",
			Subsystem: "species",
			Name:      "loaded_total",
			Help:      "Total reference species accepted by Load",
		}),
		skipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refchem",
			Subsystem: "species",
			Name:      "skipped_total",
			Help:      "Total reference species skipped by Load",
		}, []string{"reason"}),
		sets: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "refchem",
			Name:      "reference_sets",
			Help:      "Number of loaded reference sets",
		}),
	}
}
