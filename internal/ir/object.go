package ir

// Typed field accessors used by the resolvers and the flowchart validator.
// All of them treat a missing key, an IRNull, and a wrong-typed value the
// same way: the zero value plus ok=false. Callers that care about the
// distinction check Has or IsNull first.

// Has reports whether the key is present, regardless of its value.
func (obj IRObject) Has(key string) bool {
	_, ok := obj[key]
	return ok
}

// Get returns the raw value under key.
func (obj IRObject) Get(key string) (IRValue, bool) {
	v, ok := obj[key]
	return v, ok
}

// GetString returns the string value under key.
func (obj IRObject) GetString(key string) (string, bool) {
	s, ok := obj[key].(IRString)
	if !ok {
		return "", false
	}
	return string(s), true
}

// GetInt returns the integer value under key.
func (obj IRObject) GetInt(key string) (int64, bool) {
	n, ok := obj[key].(IRInt)
	if !ok {
		return 0, false
	}
	return int64(n), true
}

// GetBool returns the boolean value under key.
func (obj IRObject) GetBool(key string) (bool, bool) {
	b, ok := obj[key].(IRBool)
	if !ok {
		return false, false
	}
	return bool(b), true
}

// GetObject returns the object value under key.
func (obj IRObject) GetObject(key string) (IRObject, bool) {
	o, ok := obj[key].(IRObject)
	if !ok {
		return nil, false
	}
	return o, true
}

// GetArray returns the array value under key.
func (obj IRObject) GetArray(key string) (IRArray, bool) {
	a, ok := obj[key].(IRArray)
	if !ok {
		return nil, false
	}
	return a, true
}

// StringOr returns the string under key or the fallback.
func (obj IRObject) StringOr(key, fallback string) string {
	if s, ok := obj.GetString(key); ok {
		return s
	}
	return fallback
}

// Kind returns the node's "type" discriminator, or "" when absent.
// Every IR activity node carries one; plain data objects do not.
func (obj IRObject) Kind() string {
	return obj.StringOr(KeyType, "")
}

// IsNull reports whether v is the explicit null value.
func IsNull(v IRValue) bool {
	_, ok := v.(IRNull)
	return ok
}
