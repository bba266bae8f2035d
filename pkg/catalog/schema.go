package catalog

import "github.com/getkin/kin-openapi/openapi3"

// PairSchema describes one reply value: a two element array holding the
// suggested text and the confidence number.
func PairSchema() *openapi3.Schema {
	item := openapi3.NewOneOfSchema(
		openapi3.NewStringSchema(),
		openapi3.NewFloat64Schema(),
	)
	return openapi3.NewArraySchema().
		WithItems(item).
		WithMinItems(2).
		WithMaxItems(2)
}

// ReplySchema describes a full generation reply: a non-empty object whose
// values all satisfy PairSchema. Keys outside the catalog are allowed.
func ReplySchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithAdditionalProperties(PairSchema()).
		WithMinProperties(1)
}

// FieldReplySchema describes a single-field regeneration reply: an object that
// must carry field with a valid pair. Other keys are ignored.
func FieldReplySchema(field string) *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty(field, PairSchema()).
		WithRequired([]string{field}).
		WithAnyAdditionalProperties()
}
