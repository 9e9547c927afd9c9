// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks caller input before it reaches the admin
// mutation pipeline.
//
// A Validator accepts the draft values of the models package and an
// optional list of field names that restricts which rules run. With no
// fields, the default rule set for the value's type is applied.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
