package shared

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotelops/shared/cache"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/model"
)

var errPatchTarget = errors.New("patch target must be a non-nil pointer to struct")

var timeType = reflect.TypeOf(time.Time{})

// ParseID converts a path parameter into an entity identity.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.InvalidIDParam
	}

	return id, nil
}

// Operator names who is acting in ctx, falling back to the system operator.
func Operator(ctx context.Context) string {
	if operator, ok := ctx.Value(constant.ContextKeyOperator).(string); ok && operator != "" {
		return operator
	}

	return constant.DefaultOperator
}

// BuildCacheKey joins a prefix and its discriminators into a single redis key.
func BuildCacheKey(prefix string, parts ...any) string {
	key := strings.Builder{}
	key.WriteString(prefix)

	for _, part := range parts {
		key.WriteString(":")
		key.WriteString(fmt.Sprint(part))
	}

	return key.String()
}

// InvalidateCaches drops every key under prefix. Failures are logged, never returned.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// ApplyPatch copies every non-nil pointer field of patch onto the same-named field of
// target and returns the names of the fields it touched.
//
// Merge rules:
//   - a nil pointer leaves the target field untouched;
//   - a pointer to the field's own type replaces the value. Slices and maps replace wholesale
//     with a copy, so the target never shares backing storage with the patch;
//   - a pointer to a different struct type is itself treated as a patch and merged one level
//     into the nested struct;
//   - non-pointer patch fields carry request metadata and are never applied.
func ApplyPatch(target, patch any) ([]string, error) {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Pointer || tv.IsNil() || tv.Elem().Kind() != reflect.Struct {
		return nil, errPatchTarget
	}

	pv := reflect.ValueOf(patch)
	if pv.Kind() == reflect.Pointer {
		if pv.IsNil() {
			return nil, nil
		}

		pv = pv.Elem()
	}

	if pv.Kind() != reflect.Struct {
		return nil, nil
	}

	return applyStruct(tv.Elem(), pv, true), nil
}

func applyStruct(target, patch reflect.Value, nested bool) []string {
	applied := []string{}
	pt := patch.Type()

	for i := range pt.NumField() {
		sf := pt.Field(i)
		pf := patch.Field(i)

		if !sf.IsExported() || pf.Kind() != reflect.Pointer || pf.IsNil() {
			continue
		}

		tf := target.FieldByName(sf.Name)
		if !tf.IsValid() || !tf.CanSet() {
			continue
		}

		switch {
		case pf.Type().AssignableTo(tf.Type()):
			fresh := reflect.New(pf.Type().Elem())
			fresh.Elem().Set(detach(pf.Elem()))
			tf.Set(fresh)
		case pf.Elem().Type().AssignableTo(tf.Type()):
			tf.Set(detach(pf.Elem()))
		case nested && tf.Kind() == reflect.Struct && pf.Elem().Kind() == reflect.Struct && tf.Type() != timeType:
			if len(applyStruct(tf, pf.Elem(), false)) == 0 {
				continue
			}
		default:
			continue
		}

		applied = append(applied, sf.Name)
	}

	return applied
}

// detach returns a shallow copy of slices and maps. Other values are returned as is.
func detach(v reflect.Value) reflect.Value {
	switch {
	case v.Kind() == reflect.Slice && !v.IsNil():
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(out, v)

		return out
	case v.Kind() == reflect.Map && !v.IsNil():
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		for iter := v.MapRange(); iter.Next(); {
			out.SetMapIndex(iter.Key(), iter.Value())
		}

		return out
	default:
		return v
	}
}

// DiffPatch applies patch to a copy of current and reports, keyed by JSON field name, the
// fields whose value actually changed. current itself is left untouched.
func DiffPatch[T any](current T, patch any) (T, model.Changes, error) {
	next := current

	applied, err := ApplyPatch(&next, patch)
	if err != nil {
		return current, nil, err
	}

	changes := model.Changes{}
	before := reflect.ValueOf(current)
	after := reflect.ValueOf(next)
	typ := before.Type()

	for _, name := range applied {
		sf, _ := typ.FieldByName(name)
		from := before.FieldByName(name)
		to := after.FieldByName(name)

		if equalValues(from, to) {
			continue
		}

		changes[jsonName(sf)] = model.Change{From: from.Interface(), To: to.Interface()}
	}

	return next, changes, nil
}

// equalValues prefers a type's own Equal method (time.Time, decimal.Decimal) over DeepEqual.
func equalValues(a, b reflect.Value) bool {
	if a.Kind() == reflect.Pointer && b.Kind() == reflect.Pointer {
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}

		return equalValues(a.Elem(), b.Elem())
	}

	if method := a.MethodByName("Equal"); method.IsValid() {
		mt := method.Type()
		if mt.NumIn() == 1 && mt.In(0) == b.Type() && mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Bool {
			return method.Call([]reflect.Value{b})[0].Bool()
		}
	}

	return reflect.DeepEqual(a.Interface(), b.Interface())
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}

	return name
}
