package shared

import (
	"context"
	"math"
	"reflect"
	"strings"

	"frontdesk/shared/cache"
	"frontdesk/shared/dto"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// Paginate returns the page of items selected by params. Pages start at 1;
// a non-positive limit returns everything.
func Paginate[T any](items []T, params dto.QueryParams) []T {
	if params.Limit <= 0 {
		return items
	}

	page := max(params.Page, 1)

	start := (page - 1) * params.Limit
	if start >= len(items) {
		return []T{}
	}

	end := min(start+params.Limit, len(items))

	return items[start:end]
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a cache namespace and its discriminating parts.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// InvalidateCaches drops every key stored under prefix.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+cacheKeySeparator+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// TransformFields converts the set fields of an update request into a column
// map keyed by `db` tag. Zero values and nil pointers are skipped; pointers
// are dereferenced so a pointer to a zero value is still written.
func TransformFields(data any) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	return updatedFields
}

// ApplyFields writes a column map produced by TransformFields onto the struct
// target points to. Unknown columns and values of an incompatible type are
// ignored.
func ApplyFields(target any, fields map[string]any) {
	val := reflect.ValueOf(target).Elem()
	typ := val.Type()

	for index := range val.NumField() {
		value, ok := fields[typ.Field(index).Tag.Get("db")]
		if !ok || value == nil {
			continue
		}

		field := val.Field(index)

		newValue := reflect.ValueOf(value)
		if newValue.Kind() != field.Kind() || !newValue.Type().ConvertibleTo(field.Type()) {
			continue
		}

		field.Set(newValue.Convert(field.Type()))
	}
}
