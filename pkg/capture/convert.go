// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// ConversionError is returned when a token cannot be converted to the type
// of its capture.
type ConversionError struct {
	Token    string
	TypeName string
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("'%s' cannot convert to %s", e.Token, e.TypeName)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// TypeName returns the name used for T in conversion errors and help text.
func TypeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// Convert parses token into a T. Supported are strings, booleans, all sized
// integer and float kinds, time.Duration, *url.URL, uuid.UUID,
// *semver.Version and anything whose pointer implements
// encoding.TextUnmarshaler.
func Convert[T any](token string) (T, error) {
	var v T
	if err := convertInto(&v, token); err != nil {
		return v, &ConversionError{Token: token, TypeName: TypeName[T](), Err: err}
	}
	return v, nil
}

func convertInto(dst any, token string) error {
	var err error
	switch p := dst.(type) {
	case *string:
		*p = token
	case *bool:
		*p, err = strconv.ParseBool(token)
	case *time.Duration:
		*p, err = time.ParseDuration(token)
	case **url.URL:
		*p, err = url.Parse(token)
	case *uuid.UUID:
		*p, err = uuid.Parse(token)
	case **semver.Version:
		*p, err = semver.NewVersion(token)
	case encoding.TextUnmarshaler:
		err = p.UnmarshalText([]byte(token))
	default:
		err = convertNumber(dst, token)
	}
	return err
}

func convertNumber(dst any, token string) error {
	rv := reflect.ValueOf(dst).Elem()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(token, 10, rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(token, 10, rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(token, rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetFloat(n)
	default:
		return fmt.Errorf("unsupported capture type %s", rv.Type())
	}
	return nil
}
