// Package tryte implements the balanced-ternary machine word of the tersim system.
//
// A Tryte holds nine trits, each one of {-1, 0, 1}, giving a centered range of
// [-9841, 9841]. Every value has three interchangeable encodings:
//
//   - the raw centered integer (Int),
//   - three tribble symbols from DIGITS, each a base-27 digit worth three trits (Tribbles),
//   - nine trit symbols from "T01", most-significant first (Trits).
//
// All arithmetic wraps into the centered range; no operation on a Tryte fails.
package tryte
