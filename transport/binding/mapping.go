package binding

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// mapValues 将url.Values按照结构体标签映射到obj, 标签为空时使用字段名
func mapValues(values url.Values, tag string, obj any) error {
	if tag == "" {
		return errors.New("bind failed: empty tag provided")
	}

	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("bind failed: obj must be a non-nil pointer")
	}

	elemValue := rv.Elem()
	if elemValue.Kind() != reflect.Struct {
		return errors.New("bind failed: obj must be a pointer of struct")
	}

	if len(values) == 0 {
		return nil
	}

	elemType := elemValue.Type()
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		fieldValue := elemValue.Field(i)

		key := field.Tag.Get(tag)
		if key == "-" || !fieldValue.CanSet() {
			continue
		}
		if key == "" {
			key = field.Name
		}

		params, ok := values[key]
		if !ok || len(params) == 0 {
			continue
		}

		if err := setField(fieldValue, field, params); err != nil {
			return fmt.Errorf("bind %s failed: %w", tag, err)
		}
	}

	return nil
}

func setField(fieldValue reflect.Value, field reflect.StructField, params []string) error {
	param := params[0]

	switch fieldValue.Kind() {
	case reflect.String:
		fieldValue.SetString(param)
	case reflect.Ptr:
		// *string 用于区分参数缺失和空字符串
		if field.Type.Elem().Kind() != reflect.String {
			return errors.New("unsupported pointer type for field " + field.Name)
		}
		v := param
		fieldValue.Set(reflect.ValueOf(&v))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			return errors.New("invalid int value for field " + field.Name)
		}
		fieldValue.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(param, 10, 64)
		if err != nil {
			return errors.New("invalid uint value for field " + field.Name)
		}
		fieldValue.SetUint(v)
	case reflect.Bool:
		v, err := strconv.ParseBool(param)
		if err != nil {
			return errors.New("invalid bool value for field " + field.Name)
		}
		fieldValue.SetBool(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return errors.New("invalid float value for field " + field.Name)
		}
		fieldValue.SetFloat(v)
	case reflect.Slice:
		if field.Type.Elem().Kind() != reflect.String {
			return errors.New("unsupported slice type for field " + field.Name)
		}
		slice := reflect.MakeSlice(field.Type, 0, len(params))
		for _, v := range params {
			slice = reflect.Append(slice, reflect.ValueOf(v))
		}
		fieldValue.Set(slice)
	default:
		return errors.New("unsupported field type " + fieldValue.Kind().String() + " for field " + field.Name)
	}

	return nil
}
