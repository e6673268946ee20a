//revive:disable-next-line:var-naming // legacy package name used across the project
package model

// Attribute is a variant dimension such as size or colour.
type Attribute struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	DisplayOrder int              `json:"display_order"`
	ValuesCount  int              `json:"values_count"`
	Values       []AttributeValue `json:"values,omitempty"`
}

// AttributeRequest creates or updates an attribute.
type AttributeRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	DisplayOrder int    `json:"display_order"`
}

// AttributeValue is one option of an attribute.
type AttributeValue struct {
	ID           int64  `json:"id"`
	AttributeID  int64  `json:"attribute_type_id,omitempty"`
	Value        string `json:"value"`
	DisplayOrder int    `json:"display_order"`
}

// AttributeValueRequest creates or updates an attribute value.
type AttributeValueRequest struct {
	Value        string `json:"value"`
	DisplayOrder int    `json:"display_order"`
}

// AttributeOptions pairs an attribute with its values for variant forms.
type AttributeOptions struct {
	Attribute Attribute
	Values    []AttributeValue
}
