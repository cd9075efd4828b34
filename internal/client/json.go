package client

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/yndnr/redisgate-go/internal/core/domain"
)

// RedisJSON commands (the JSON.* module family). Document arguments
// are validated as JSON locally before anything is written, so a
// malformed payload fails fast instead of burning a round trip.

// JSONSet stores a JSON value at path inside key's document.
func (c *Conn) JSONSet(ctx context.Context, key, path, value string) error {
	if !json.Valid([]byte(value)) {
		return domain.ErrValidation.WithDetails("JSON.SET value is not valid JSON")
	}
	_, err := c.doStatus(ctx, "JSON.SET", key, path, value)
	return err
}

// JSONGet returns the JSON text at one or more paths. With no path the
// whole document is returned. The bool result reports presence.
func (c *Conn) JSONGet(ctx context.Context, key string, paths ...string) (string, bool, error) {
	return c.doString(ctx, append([]string{"JSON.GET", key}, paths...)...)
}

// JSONDel deletes the value at path and returns the number of paths
// removed.
func (c *Conn) JSONDel(ctx context.Context, key, path string) (int64, error) {
	return c.doInt(ctx, "JSON.DEL", key, path)
}

// JSONType returns the JSON type name at path ("object", "array",
// "string", ...). The bool result reports whether the path exists.
func (c *Conn) JSONType(ctx context.Context, key, path string) (string, bool, error) {
	v, err := c.Do(ctx, "JSON.TYPE", key, path)
	if err != nil {
		return "", false, err
	}
	if v.IsNil() {
		return "", false, nil
	}
	// JSONPath form wraps the answer in an array; legacy paths answer
	// with a bare string.
	if len(v.Items) > 0 {
		if v.Items[0].IsNil() {
			return "", false, nil
		}
		return v.Items[0].Text(), true, nil
	}
	return v.Text(), true, nil
}

// JSONArrAppend appends JSON values to the array at path and returns
// the new length.
func (c *Conn) JSONArrAppend(ctx context.Context, key, path string, values ...string) (int64, error) {
	if len(values) == 0 {
		return 0, domain.ErrValidation.WithDetails("JSON.ARRAPPEND requires at least one value")
	}
	for _, v := range values {
		if !json.Valid([]byte(v)) {
			return 0, domain.ErrValidation.WithDetails("JSON.ARRAPPEND value is not valid JSON")
		}
	}
	return c.doFirstInt(ctx, append([]string{"JSON.ARRAPPEND", key, path}, values...)...)
}

// JSONArrIndex returns the index of value in the array at path, or -1
// when absent.
func (c *Conn) JSONArrIndex(ctx context.Context, key, path, value string) (int64, error) {
	if !json.Valid([]byte(value)) {
		return 0, domain.ErrValidation.WithDetails("JSON.ARRINDEX value is not valid JSON")
	}
	return c.doFirstInt(ctx, "JSON.ARRINDEX", key, path, value)
}

// JSONArrInsert inserts JSON values before index in the array at path
// and returns the new length.
func (c *Conn) JSONArrInsert(ctx context.Context, key, path string, index int64, values ...string) (int64, error) {
	if len(values) == 0 {
		return 0, domain.ErrValidation.WithDetails("JSON.ARRINSERT requires at least one value")
	}
	for _, v := range values {
		if !json.Valid([]byte(v)) {
			return 0, domain.ErrValidation.WithDetails("JSON.ARRINSERT value is not valid JSON")
		}
	}
	args := append([]string{"JSON.ARRINSERT", key, path, strconv.FormatInt(index, 10)}, values...)
	return c.doFirstInt(ctx, args...)
}

// JSONArrLen returns the length of the array at path.
func (c *Conn) JSONArrLen(ctx context.Context, key, path string) (int64, error) {
	return c.doFirstInt(ctx, "JSON.ARRLEN", key, path)
}

// JSONArrPop removes and returns the element at index from the array
// at path; -1 pops the last element. The bool result reports whether
// anything was popped.
func (c *Conn) JSONArrPop(ctx context.Context, key, path string, index int64) (string, bool, error) {
	v, err := c.Do(ctx, "JSON.ARRPOP", key, path, strconv.FormatInt(index, 10))
	if err != nil {
		return "", false, err
	}
	if v.IsNil() {
		return "", false, nil
	}
	if len(v.Items) > 0 {
		if v.Items[0].IsNil() {
			return "", false, nil
		}
		return v.Items[0].Text(), true, nil
	}
	return v.Text(), true, nil
}

// JSONArrTrim trims the array at path to [start, stop] and returns the
// new length.
func (c *Conn) JSONArrTrim(ctx context.Context, key, path string, start, stop int64) (int64, error) {
	return c.doFirstInt(ctx, "JSON.ARRTRIM", key, path,
		strconv.FormatInt(start, 10), strconv.FormatInt(stop, 10))
}

// JSONObjKeys returns the key names of the object at path.
func (c *Conn) JSONObjKeys(ctx context.Context, key, path string) ([]string, error) {
	v, err := c.Do(ctx, "JSON.OBJKEYS", key, path)
	if err != nil {
		return nil, err
	}
	// JSONPath form nests the answer one array deeper.
	if len(v.Items) == 1 && len(v.Items[0].Items) > 0 {
		v = v.Items[0]
	}
	out := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		out = append(out, item.Text())
	}
	return out, nil
}

// JSONObjLen returns the number of keys in the object at path.
func (c *Conn) JSONObjLen(ctx context.Context, key, path string) (int64, error) {
	return c.doFirstInt(ctx, "JSON.OBJLEN", key, path)
}

// JSONStrAppend appends a JSON string to the string at path and
// returns the new length. The value must be JSON-encoded, quotes
// included.
func (c *Conn) JSONStrAppend(ctx context.Context, key, path, value string) (int64, error) {
	if !json.Valid([]byte(value)) {
		return 0, domain.ErrValidation.WithDetails("JSON.STRAPPEND value is not valid JSON")
	}
	return c.doFirstInt(ctx, "JSON.STRAPPEND", key, path, value)
}

// JSONStrLen returns the length of the string at path.
func (c *Conn) JSONStrLen(ctx context.Context, key, path string) (int64, error) {
	return c.doFirstInt(ctx, "JSON.STRLEN", key, path)
}

// JSONNumIncrBy increments the number at path and returns the new
// value.
func (c *Conn) JSONNumIncrBy(ctx context.Context, key, path string, delta float64) (float64, error) {
	v, err := c.Do(ctx, "JSON.NUMINCRBY", key, path, formatScore(delta))
	if err != nil {
		return 0, err
	}
	// The module answers with the new value serialized as JSON text;
	// JSONPath form wraps it in a JSON array.
	text := v.Text()
	var arr []float64
	if jerr := json.Unmarshal([]byte(text), &arr); jerr == nil && len(arr) > 0 {
		return arr[0], nil
	}
	f, perr := strconv.ParseFloat(text, 64)
	if perr != nil {
		return 0, c.fail("JSON.NUMINCRBY", perr)
	}
	return f, nil
}

// doFirstInt handles JSON.* replies that are a bare integer with a
// legacy path, or an array of per-path integers with a JSONPath; the
// first element wins.
func (c *Conn) doFirstInt(ctx context.Context, args ...string) (int64, error) {
	v, err := c.Do(ctx, args...)
	if err != nil {
		return 0, err
	}
	if len(v.Items) > 0 {
		return v.Items[0].Int, nil
	}
	return v.Int, nil
}
