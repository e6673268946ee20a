//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import "strconv"

// FormField is one text part of a multipart submission.
type FormField struct {
	Name  string
	Value string
}

// Upload is one file part of a multipart submission.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// MultipartRequest is implemented by write requests the backend accepts as
// multipart/form-data because they may carry files.
type MultipartRequest interface {
	FormFields() []FormField
	FormUploads() []Upload
}

func boolField(name string, v bool) FormField {
	return FormField{Name: name, Value: strconv.FormatBool(v)}
}

func intField(name string, v int) FormField {
	return FormField{Name: name, Value: strconv.Itoa(v)}
}

// optionalID renders an optional foreign key; the backend reads an empty
// value as "no relation".
func optionalID(name string, v *int64) FormField {
	if v == nil {
		return FormField{Name: name}
	}
	return FormField{Name: name, Value: strconv.FormatInt(*v, 10)}
}

func appendIfSet(fields []FormField, name string, v Decimal) []FormField {
	if v.IsZero() {
		return fields
	}
	return append(fields, FormField{Name: name, Value: v.String()})
}
