// Package physics implements the gravity engine.
//
// A tick is evaluated against a frozen view of the celestial bodies:
//
//   - [AccelerationAt]: Newtonian acceleration at a point from a list of
//     [Source] values, excluding one source by slot identity
//   - [Field]: pluggable force source ([Newtonian], [Softened])
//   - [Engine]: freezes the sources once, computes every acceleration, then
//     integrates with an [integrators.Integrator]
//
// Spacecraft feel every celestial body; celestial bodies feel every other
// celestial body. Spacecraft never act as sources.
//
// # Conservation
//
// [Energy], [Momentum] and [AngularMomentum] measure closed celestial
// systems and are used to monitor integrator drift.
package physics
