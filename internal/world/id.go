// Package world discovers the dimensions of a save that carry worldgen
// statistics and keeps them in a stable, ordered table.
package world

import "strings"

// DefaultNamespace is used for ids typed without a namespace.
const DefaultNamespace = "minecraft"

// ID is a namespaced identifier such as "minecraft:overworld".
type ID = string

// Normalize prefixes s with ns when it has no namespace of its own.
// "dirt" becomes "minecraft:dirt"; "modid:block" is returned unchanged.
func Normalize(s, ns string) ID {
	if strings.Contains(s, ":") {
		return s
	}
	if ns == "" {
		ns = DefaultNamespace
	}
	return ns + ":" + s
}

// DisplayName makes an id safe for window titles, where ':' and '/' are not
// always allowed.
func DisplayName(id ID) string {
	return strings.NewReplacer(":", "$", "/", "+").Replace(id)
}
