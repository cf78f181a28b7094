// Package resolve implements the lookup stages used to find calibration
// values in a node tree.
//
// A lookup runs as a fixed sequence of stages, each of which may end it:
//
//  1. Group: the group key is looked up at the top level of the document
//     and must hold a sequence of period entries.
//  2. Period: the first period entry whose run interval contains the run
//     number is selected (MatchRange). Intervals are inclusive and may be
//     written as [min, max] or as a mapping with min and max keys.
//     Overlapping intervals are allowed; document order breaks ties.
//  3. Dependent: inside the period entry, the element of the dependent list
//     whose dependent value equals the probe is selected (ResolveDependent).
//     When the dependent key is the pass-through key the list is skipped.
//     When the list is missing or has no matching element, the period's own
//     value is used instead.
//  4. Value: the value key is read from whatever the previous stage chose.
//
// Resolve reports which stage ended the lookup through Result.Outcome, so
// callers can substitute their default and record why. Convert and
// ConvertSlice turn the located node into a Go value without panicking.
//
// Dependent values are matched by exact equality only.
package resolve
