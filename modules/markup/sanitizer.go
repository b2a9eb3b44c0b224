// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package markup

import (
	"bytes"
	"io"
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer is a protection wrapper of *bluemonday.Policy which does not allow
// any modification to the underlying policies once it's been created.
type Sanitizer struct {
	policy *bluemonday.Policy
}

var (
	defaultSanitizer     *Sanitizer
	defaultSanitizerOnce sync.Once
)

// GetDefaultSanitizer returns the sanitizer used for all rendered markup
func GetDefaultSanitizer() *Sanitizer {
	defaultSanitizerOnce.Do(func() {
		defaultSanitizer = &Sanitizer{policy: createDefaultPolicy()}
	})
	return defaultSanitizer
}

func createDefaultPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()

	// chart images carry their alignment as a class
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^media(left|right|center)?$`)).OnElements("img")

	// failed charts are shown as their source
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^charter-error$`)).OnElements("pre")

	// code highlighting classes of fenced blocks
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w-]+$`)).OnElements("code")

	return policy
}

// Sanitize takes a string that contains a HTML fragment or document and applies policy whitelist.
func Sanitize(s string) string {
	return GetDefaultSanitizer().policy.Sanitize(s)
}

// SanitizeReader sanitizes a Reader
func SanitizeReader(r io.Reader) *bytes.Buffer {
	return GetDefaultSanitizer().policy.SanitizeReader(r)
}
