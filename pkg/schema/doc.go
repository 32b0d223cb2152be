// Package schema type-checks the loosely typed attribute bags sent by visual editors.
//
// A Schema maps attribute names to a Type. Attributes absent from the bag (or set to null)
// are skipped, so editors may omit any optional field. Numeric types accept JSON numbers as
// well as numeric strings, mirroring the weakly typed decoding applied afterwards; NaN and
// infinities are always rejected.
//
//	s := schema.Schema{
//	    "temperature": schema.FloatRange(0, 2),
//	    "maxTokens":   schema.PositiveInt(),
//	    "model":       schema.String(),
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        // report e
//	    }
//	}
//
// The package only depends on the standard library.
package schema
