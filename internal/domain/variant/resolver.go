// internal/domain/variant/resolver.go
package variant

import "strings"

// Selection is a partial size/color choice. Empty fields mean "any".
type Selection struct {
	Size  string
	Color string
}

// Resolve maps a partial selection over a product's variant list to one
// concrete available variant. A requested size or color is binding: when no
// available variant carries it, there is no match. Matching order:
//  1. exact size+color
//  2. size only (the selected color does not exist for that size)
//  3. color only (size not requested)
//  4. first available variant at all (nothing requested)
//
// ok is false when nothing matches; a product with zero variants is simply
// not orderable, never an error.
func Resolve(variants []Variant, sel Selection) (Variant, bool) {
	size := strings.TrimSpace(sel.Size)
	color := strings.TrimSpace(sel.Color)

	if size != "" && color != "" {
		if v, ok := findAvailable(variants, size, color); ok {
			return v, true
		}
		// hold the requested size, drop only the color
		return findAvailable(variants, size, "")
	}
	if size != "" {
		return findAvailable(variants, size, "")
	}
	if color != "" {
		return findAvailable(variants, "", color)
	}
	return findAvailable(variants, "", "")
}

// ChangeSize re-resolves after the user picks a size, holding the currently
// selected color when a variant for (size, color) exists and falling back to
// any available variant of that size otherwise. ok is false (no change) when
// no available variant carries the requested size.
func ChangeSize(variants []Variant, currentID, size string) (Variant, bool) {
	size = strings.TrimSpace(size)
	if size == "" {
		return Variant{}, false
	}

	color := ""
	if cur, ok := ByID(variants, currentID); ok {
		color = cur.Color
	}

	if color != "" {
		if v, ok := findAvailable(variants, size, color); ok {
			return v, true
		}
	}
	return findAvailable(variants, size, "")
}

// ChangeColor is symmetric to ChangeSize, holding size when possible.
func ChangeColor(variants []Variant, currentID, color string) (Variant, bool) {
	color = strings.TrimSpace(color)
	if color == "" {
		return Variant{}, false
	}

	size := ""
	if cur, ok := ByID(variants, currentID); ok {
		size = cur.Size
	}

	if size != "" {
		if v, ok := findAvailable(variants, size, color); ok {
			return v, true
		}
	}
	return findAvailable(variants, "", color)
}

// ByID finds a variant in the list by id.
func ByID(variants []Variant, id string) (Variant, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Variant{}, false
	}
	for _, v := range variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// Sizes returns the distinct size labels in list order.
func Sizes(variants []Variant) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		if _, ok := seen[v.Size]; ok {
			continue
		}
		seen[v.Size] = struct{}{}
		out = append(out, v.Size)
	}
	return out
}

// Colors returns the distinct color names in list order.
func Colors(variants []Variant) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		if _, ok := seen[v.Color]; ok {
			continue
		}
		seen[v.Color] = struct{}{}
		out = append(out, v.Color)
	}
	return out
}

func findAvailable(variants []Variant, size, color string) (Variant, bool) {
	for _, v := range variants {
		if !v.Available {
			continue
		}
		if size != "" && v.Size != size {
			continue
		}
		if color != "" && v.Color != color {
			continue
		}
		return v, true
	}
	return Variant{}, false
}
