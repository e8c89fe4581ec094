package modelfactory

// Merge computes the attributes for one build of t.
//
// Overrides win outright for every key they contain and are passed through
// untouched: never copied, never invoked. Keys only the template defines are
// resolved by kind:
//   - Optional: dropped
//   - Required: kept with the Required placeholder as value
//   - Generated: the generator is called once
//   - Frozen: the value is shared
//   - Default: the value is shallow-copied
//
// Override keys the template does not define are kept; rejecting them is
// up to the target type.
func Merge(t Template, overrides Attributes) Attributes {
	out := make(Attributes, len(t.attrs)+len(overrides))
	for key, attr := range t.attrs {
		if _, overridden := overrides[key]; overridden {
			continue
		}
		if v, ok := attr.resolve(); ok {
			out[key] = v
		}
	}
	for key, v := range overrides {
		out[key] = v
	}
	return out
}
