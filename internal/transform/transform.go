package transform

// Options is the free-form option map forwarded verbatim to a transformer.
// The recognized keys belong to the transformer, not to the caller; no
// validation or defaulting of individual keys happens outside it.
type Options map[string]any

// Transformer converts source text into transformed text.
type Transformer interface {
	Transform(src string, opts Options) (string, error)
}

// Func is a Transformer represented by a plain function.
type Func func(src string, opts Options) (string, error)

// Transform satisfies Transformer.
func (fn Func) Transform(src string, opts Options) (string, error) {
	return fn(src, opts)
}

// String reads a string-valued option, returning fallback when the key is
// absent or holds a non-string value.
func (o Options) String(key, fallback string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return fallback
}

// Bool reads a bool-valued option, returning fallback when the key is
// absent or holds a non-bool value.
func (o Options) Bool(key string, fallback bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return fallback
}
