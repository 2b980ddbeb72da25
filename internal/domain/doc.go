// Package domain models the ClimatQuartier scenario-impact engine: climate
// indicator records for three French municipalities and the land-use
// transforms that turn a baseline record into a simulated one.
//
// # Zones, scenarios and horizons
//
// A zone is one modelled municipality (Cergy, Annecy, Saint-Malo). Each zone
// carries a current (2025) baseline and projected baselines per climate
// scenario and horizon:
//
//	ssp2  SSP2-4.5, moderate emissions pathway
//	ssp5  SSP5-8.5, extreme emissions pathway
//	horizons 2030, 2050, 2100
//
// Scenario and horizon only select which baseline is used. They are
// orthogonal to the action vector.
//
// # Indicator record
//
// Baseline fields (required for every zone, scenario and horizon):
//
//	temperature    mean annual temperature, °C
//	heatwave       heat-wave days per year
//	precipitation  annual precipitation, mm
//	icu            urban heat island intensity, °C above rural reference
//	vegetation     vegetation cover, %
//
// Extended fields added before simulation (see [Extend]):
//
//	pm25           fine particulate matter, µg/m³ (zone static value)
//	biodiversite, surfaceParHab, surfaceEVParHab, loisirs,
//	infiltration, inondations, nappes
//	               dimensionless indices, 1.0 at baseline
//
// # Action vector
//
// Four independent intervention magnitudes (see [Actions]):
//
//	nbArbres         trees planted, count (UI range 0–20000)
//	deltaEVpct       green-space area growth, % (0–50)
//	deltaDensitePct  built density change, signed % (−10–+15)
//	pctPerm          surface converted to permeable soil, % (0–70)
//
// The engine never clamps: callers use [Actions.Clamp] before composing.
//
// # Interpolation
//
// Each transform reads hand-calibrated control-point tables through
// [Interpolate]. Below the first control point the estimate is proportional
// through the origin (y0 * x / x0), not an extension of the first segment.
// Above the last point the final segment's slope is extended.
//
// # Composition
//
// [ComposeScenario] applies, in this order:
//
//	vegetalisation   temperature +, icu +, pm25 ×%, biodiversite ×%
//	espaces verts    surfaceParHab ×%, icu +, biodiversite ×%, loisirs ×%,
//	                 vegetation ×% of the raw deltaEVpct
//	densite          icu +, pm25 ×%, surfaceEVParHab ×%
//	sols permeables  infiltration ×%, inondations ×%, temperature +, nappes ×%
//
// "+" adds the interpolated delta, "×%" multiplies by (1 + delta/100). Later
// transforms see the fields already adjusted by earlier ones, so percentage
// adjustments compound.
//
// # Result IDs
//
// Simulation result IDs are deterministic SHA-256 hashes of
// zone|scenario|horizon|actions so that replays of the same request produce
// the same key downstream. See [generateID].
package domain
