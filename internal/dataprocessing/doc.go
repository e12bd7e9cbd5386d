// Package dataprocessing is the reconciliation and aggregation core of
// the thermal experiment pipeline. It takes heterogeneous per-sensor raw
// files and produces a consistent, multi-resolution (sensor -> wall ->
// box) time-indexed dataset with derived physical quantities.
//
// # Architecture
//
// The package is a directed acyclic composition of stateless stages:
//
//  1. Parser: decodes one raw sensor file into clean Readings
//  2. Loader: discovers a period's files, parses them concurrently and
//     attaches sensor identity
//  3. Resampler: floors readings onto the shared 10-minute bin grid
//  4. Derive: normalized temperatures and the wall gradient chain
//  5. WallAggregator / BoxAggregator: roll sensor bins up to wall and
//     box level
//  6. LagEstimator: cross-correlation thermal lag between outside and
//     inside surface series
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger, cfg.Pipeline)
//	periods, err := loader.LoadAllPeriods(ctx, cfg.Paths.DataDir)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	transformer := dataprocessing.NewTransformer(logger, cfg.Pipeline)
//	dataset, err := transformer.TransformAll(ctx, periods)
//
// # Error Handling
//
// Per-file and per-sensor failures are recovered locally: they are
// logged, recorded on the stage's report object and excluded from
// aggregation. Partial sensor dropout is the normal field condition.
// Only a period yielding zero usable sensor tables escalates to a hard
// NO_DATA error, since no meaningful aggregate exists for it.
package dataprocessing
