// Package types defines the product variants, condition fields and bounds,
// the error taxonomy and the Config shared by the stockroom packages.
//
// A Product is an immutable tagged variant over Belt, Cake and Cup. Fields are
// addressed generically through Field so that conditions can resolve the
// "special" attribute per kind without type switches at the call site.
package types
