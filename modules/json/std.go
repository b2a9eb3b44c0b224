// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package json

import (
	"bytes"
	"encoding/json" //nolint:depguard // this package wraps it
)

func stdIndent(dst *bytes.Buffer, src []byte, prefix, indent string) error {
	return json.Indent(dst, src, prefix, indent)
}

// Valid proxy to json.Valid
func Valid(data []byte) bool {
	return json.Valid(data)
}
