// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Item is a generic record exposed through the /item endpoints.
type Item struct {
	// ID is the store-assigned identifier in its string form.
	ID string `json:"id,omitempty"`

	// Name is the human readable item name. Required.
	Name string `json:"name" validate:"required,max=256"`

	// Number is an optional client-defined numeric tag.
	Number int64 `json:"number,omitempty"`
}

// ItemPatch describes a partial item update.
// Only non-nil fields will be written.
type ItemPatch struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=256"`
	Number *int64  `json:"number,omitempty"`
}

// IsEmpty reports whether the patch carries no field.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Number == nil
}
