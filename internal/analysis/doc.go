// Package analysis inspects recorded chain runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: oscillation content of a
//     sampled series, e.g. the x coordinate of the chain end
//   - [TraceArm] and [TraceToASCII]: the path an arm drew on screen
//
// # Swing Period
//
// Samples are taken once per frame, so the sample rate is one per time unit:
//
//	xs := analysis.ArmSeries(samples, -1, analysis.AxisX)
//	f := analysis.DominantFrequency(xs, 1)
//	period := 1 / f
package analysis
