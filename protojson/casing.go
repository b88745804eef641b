// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protojson

import "strings"

// jsonName renders a field's Go struct-field name in the default camelCase
// JSON casing. Generated message types name their fields in PascalCase (the
// Go export convention), so this only needs to lowercase the leading run of
// the name, not perform full snake_case splitting.
func jsonName(goName string) string {
	if goName == "" {
		return goName
	}
	r := []rune(goName)
	for i, c := range r {
		lower := c >= 'A' && c <= 'Z'
		if !lower {
			break
		}
		// Lowercase every leading capital except the last one of a run that
		// is immediately followed by a lowercase letter (so "ID" -> "id" but
		// "IDToken" -> "idToken", matching protoc-gen-go's own JSONName
		// derivation for all-caps initialisms).
		if i+1 < len(r) && r[i+1] >= 'a' && r[i+1] <= 'z' && i > 0 {
			break
		}
		r[i] = c + ('a' - 'A')
	}
	return string(r)
}

// protoName renders a field's Go struct-field name in snake_case, the
// original declared field name, used when MarshalOptions.UseProtoNames is
// set. All-caps runs are treated as one word, mirroring jsonName: "ID"
// becomes "id" and "IDToken" becomes "id_token", not "i_d...".
func protoName(goName string) string {
	var b strings.Builder
	r := []rune(goName)
	for i, c := range r {
		if c >= 'A' && c <= 'Z' {
			prevUpper := i > 0 && r[i-1] >= 'A' && r[i-1] <= 'Z'
			lastOfRun := i+1 < len(r) && r[i+1] >= 'a' && r[i+1] <= 'z'
			if i > 0 && (!prevUpper || lastOfRun) {
				b.WriteByte('_')
			}
			b.WriteRune(c + ('a' - 'A'))
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// sameField reports whether an incoming JSON key names the given declared
// field: it compares the key against both casings of the field name, so
// decoding works regardless of which casing produced the JSON.
func sameField(key, goName string) bool {
	return key == goName || key == jsonName(goName) || key == protoName(goName)
}
