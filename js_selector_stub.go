//go:build !js_match

package labels

// NewJSSelector is unavailable without the js_match build tag.
func NewJSSelector(opts ...JSSelectorOption) Selector {
	_ = applyJSSelectorOptions(opts)
	return nil
}

func jsSelectorAvailable() bool {
	return false
}
