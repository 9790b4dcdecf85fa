// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

// Stats reports the active snapshot. It never fails.
func (e *Engine) Stats() Stats {
	stats := Stats{
		Region:      e.config.Region,
		StartupTime: e.startupTime,
	}
	if msg, _ := e.lastError.Load().(string); msg != "" {
		stats.LastError = msg
	}

	snap := e.snapshot.Load()
	if snap == nil {
		return stats
	}

	published := snap.PublishedAt
	trained := snap.Model.TrainedAt
	stats.ModelsLoaded = true
	stats.LoadedFromStore = snap.Loaded
	stats.LastModelUpdate = &published
	stats.TrainedAt = &trained
	stats.UserCount = snap.Matrix.UserCount()
	stats.ProductCount = snap.Matrix.ProductCount()
	stats.TotalInteractions = snap.Matrix.ObservedCount()
	stats.MatrixDensity = snap.Matrix.Density()
	stats.SVDComponents = snap.Model.Factors.Rank
	stats.ExplainedVarianceRatio = snap.Model.Factors.TotalExplainedVariance()
	stats.ModelVersion = snap.Version
	return stats
}

// RequestCount returns the number of recommend calls served.
func (e *Engine) RequestCount() int64 {
	return e.requestCount.Load()
}

// FallbackCount returns how many personalized requests fell back to popularity.
func (e *Engine) FallbackCount() int64 {
	return e.fallbackCount.Load()
}
