package mapping

// NullableString maps the empty string to NULL.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue maps NULL to the empty string.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
