// Package envelope provides a generic linear ADSR envelope generator.
//
// A [Generator] walks through the Attack, Decay, Sustain and Release stages
// one step per call to [Generator.Next], driven by [Generator.NoteOn] and
// [Generator.NoteOff]. Each stage moves the output by a constant slope
// towards its target level; segments may rise or fall depending on the
// configured levels, so stage ends are detected by crossing rather than by
// direction.
//
// The generator is generic over [core.Number]: floating-point instantiations
// keep levels in [0, 1], signed-integer instantiations in [0, max]. Invalid
// parameters are clamped, never rejected.
//
// Helpers:
//   - Process, Apply and Render: block rendering and gain application.
//     Render stops early when [Generator.Stalled] reports a release that
//     cannot finish.
//   - NewFromTimes: construction from stage durations at a sample rate.
//   - Analyze: level and spectral statistics of a rendered envelope.
//
// Generators are not safe for concurrent use; give each voice its own.
package envelope
