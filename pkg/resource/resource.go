// Package resource shapes models into the maps a page or API returns, so
// response layout is decided in one place per model.
//
//	var Product resource.Transformer[models.Product] = func(p models.Product) resource.Map {
//	    return resource.Map{"id": p.ID, "name": p.Name, "price": p.Price}
//	}
//
//	data := resource.Map{"products": resource.Collection(Product, products)}
package resource

// Map is the output of a transformer.
type Map = map[string]interface{}

// Transformer converts one model into a Map.
type Transformer[T any] func(T) Map

// Item transforms a single value.
func Item[T any](t Transformer[T], v T) Map {
	return t(v)
}

// Optional transforms *v, or returns nil for a nil pointer.
func Optional[T any](t Transformer[T], v *T) Map {
	if v == nil {
		return nil
	}
	return t(*v)
}

// Collection transforms every element. The result is never nil, so it
// encodes as [] rather than null.
func Collection[T any](t Transformer[T], items []T) []Map {
	out := make([]Map, 0, len(items))
	for _, it := range items {
		out = append(out, t(it))
	}
	return out
}

// Merge copies extra keys over base and returns base.
func Merge(base Map, extra Map) Map {
	for k, v := range extra {
		base[k] = v
	}
	return base
}
