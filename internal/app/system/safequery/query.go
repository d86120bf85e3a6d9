// Package safequery runs store queries so that a failing source never fails
// the request: every query has its own deadline, every failure is logged and
// recorded, and the caller always gets rows back (real or fallback).
package safequery

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
)

// Query describes one read against the store. Exactly one of Pipeline
// (an aggregation on Collection) or Command (a database command whose reply
// is a single row) is set.
type Query struct {
	Name       string
	Collection string
	Pipeline   []bson.M
	Command    bson.D
}

// IsCommand reports whether q is a database command.
func (q Query) IsCommand() bool { return len(q.Command) > 0 }

// Runner is the only capability the engine needs from the store: run a
// query and decode its rows into out, which must be a pointer to a slice.
type Runner interface {
	Rows(ctx context.Context, q Query, out any) error
	Ping(ctx context.Context) error
}

// ErrBadTarget is returned when out is not a pointer to a slice.
var ErrBadTarget = errors.New("safequery: out must be a non-nil pointer to a slice")

// AppendDecoded decodes one BSON document into a new element of the slice
// out points to and appends it.
func AppendDecoded(out any, doc []byte) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return ErrBadTarget
	}
	slice := rv.Elem()
	elem := reflect.New(slice.Type().Elem())
	if err := bson.Unmarshal(doc, elem.Interface()); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	slice.Set(reflect.Append(slice, elem.Elem()))
	return nil
}

// ResetTarget truncates the slice out points to.
func ResetTarget(out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return ErrBadTarget
	}
	rv.Elem().Set(reflect.MakeSlice(rv.Elem().Type(), 0, 0))
	return nil
}
