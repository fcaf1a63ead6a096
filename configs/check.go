package configs

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// checker validates the `enum` and `range` struct tags of a single config
// field.
type checker struct {
	conf  *Config
	field string
}

func newChecker(conf *Config, field string) *checker {
	return &checker{conf: conf, field: field}
}

func (c *checker) check() error {
	if c.conf == nil {
		return errors.New("nil *Config")
	}

	elem := reflect.ValueOf(c.conf).Elem()
	fieldObj, ok := elem.Type().FieldByName(c.field)
	if !ok {
		return errors.Newf("no such field: %s", c.field)
	}
	val := elem.FieldByName(c.field).Interface()

	if err := c.checkEnum(fieldObj, val); err != nil {
		return err
	}
	return c.checkRange(fieldObj, val)
}

func (c *checker) checkEnum(fieldObj reflect.StructField, val any) error {
	enum, found := fieldObj.Tag.Lookup("enum")
	if !found || len(enum) < 1 {
		return nil
	}

	for _, part := range strings.Split(enum, ",") {
		if fmt.Sprintf("%v", val) == strings.TrimSpace(part) {
			return nil
		}
	}

	return errors.Newf("invalid value: %v, expect one of %s", val, enum)
}

func (c *checker) checkRange(fieldObj reflect.StructField, val any) error {
	rang, found := fieldObj.Tag.Lookup("range")
	if !found || len(rang) < 1 {
		return nil
	}

	part := strings.SplitN(rang, "-", 2)
	if len(part) != 2 {
		return errors.Newf("invalid range tag: %s", rang)
	}

	min, err := strconv.Atoi(part[0])
	if err != nil {
		return errors.Wrap(err, rang)
	}
	max, err := strconv.Atoi(part[1])
	if err != nil {
		return errors.Wrap(err, rang)
	}

	var leng int
	switch v := val.(type) {
	case int:
		leng = v
	case string:
		leng = len(v)
	default:
		return errors.Newf("range tag on unsupported type %s", fieldObj.Type.Kind())
	}

	if leng < min || leng > max {
		return errors.Newf("invalid value: %d, it should be [%d, %d]", leng, min, max)
	}

	return nil
}
