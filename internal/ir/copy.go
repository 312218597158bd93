package ir

// DeepCopy returns a structurally independent copy of v.
// Conversion passes operate on owned copies so the caller's tree is never
// mutated; every correction and ID rewrite lands on the copy.
func DeepCopy(v IRValue) IRValue {
	switch val := v.(type) {
	case nil:
		return nil
	case IRNull, IRString, IRInt, IRBool:
		// Immutable scalars share no state
		return val
	case IRArray:
		out := make(IRArray, len(val))
		for i, elem := range val {
			out[i] = DeepCopy(elem)
		}
		return out
	case IRObject:
		out := make(IRObject, len(val))
		for k, elem := range val {
			out[k] = DeepCopy(elem)
		}
		return out
	default:
		// Unreachable for sealed IRValue implementations
		return val
	}
}

// DeepCopyObject is a convenience wrapper for the common object case.
func DeepCopyObject(obj IRObject) IRObject {
	return DeepCopy(obj).(IRObject)
}
