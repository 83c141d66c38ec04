package models

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/go-playground/validator"
)

type Model interface {
	TableName() string
	GetID() int64
	EmptySlice() interface{}
}

// go-playground/validator suggests using a single instance of the validator.
// Struct-level rules (e.g. the event start/finish gap) are registered here so
// every caller of ValidateModel gets them for free.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(eventStructLevel, Event{})
	return v
}

// ValidationError is a caller-visible validation failure carrying enough
// detail to render a field-level message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidateModel validates a model using the go-playground/validator package.
// The first failing field is reported as a *ValidationError.
func ValidateModel(model interface{}) error {
	m, ok := model.(Model)
	if !ok {
		return fmt.Errorf("expected model, got %T", model)
	}

	if err := validate.Struct(m); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return NewValidationError(fe.Field(), fmt.Sprintf("failed on the %q rule", fe.Tag()))
		}
		return err
	}
	return nil
}

// GetValsFromModel returns the field values of a model as a slice of
// interfaces, in the order of the model's column names. It is used for
// extracting values from the model and writing them to the database.
// Validation of the model should be done before use.
func GetValsFromModel(m Model) []interface{} {
	val := reflect.ValueOf(m)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()
	numFields := val.NumField()

	fieldMap := make(map[string]interface{})
	for i := 0; i < numFields; i++ {
		field := typ.Field(i)

		if field.Tag.Get("readOnly") == "true" {
			continue
		}

		dbTag := field.Tag.Get("db")
		fieldMap[dbTag] = val.Field(i).Interface()
	}

	columnNames := GetColumnNames(m, true)
	vals := make([]interface{}, len(columnNames))
	for i, cn := range columnNames {
		vals[i] = fieldMap[cn]
	}

	return vals
}

// ScanRowToModel scans a single SQL row into a given model. It takes a model
// and passes a slice of pointers to the model's fields to the sql.Row's Scan
// method. It returns an error if the scan fails or the model is not a pointer.
func ScanRowToModel(m Model, r *sql.Row) error {
	val := reflect.ValueOf(m)
	if val.Kind() != reflect.Ptr {
		return fmt.Errorf("expected pointer to model, got %T", m)
	}
	val = val.Elem()
	typ := val.Type()

	fieldPtrs := make([]interface{}, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		fieldPtrs[i] = val.Field(i).Addr().Interface()
	}

	if err := r.Scan(fieldPtrs...); err != nil {
		return err
	}
	return nil
}

// ScanRowsToModel scans the current row of a sql.Rows result set into the
// given model. Callers drive rows.Next themselves, which keeps the per-table
// query functions in the repository free of reflection details.
func ScanRowsToModel(m Model, rows *sql.Rows) error {
	val := reflect.ValueOf(m)
	if val.Kind() != reflect.Ptr {
		return fmt.Errorf("expected pointer to model, got %T", m)
	}
	val = val.Elem()
	typ := val.Type()

	fieldPtrs := make([]interface{}, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		fieldPtrs[i] = val.Field(i).Addr().Interface()
	}

	return rows.Scan(fieldPtrs...)
}

// ScanRowsToSlice drains a whole result set into the slice type the model
// advertises through EmptySlice. The return value is a pointer to that slice
// wrapped in an interface; callers assert it back, e.g.
// *result.(*[]Tag).
func ScanRowsToSlice(m Model, rows *sql.Rows) (interface{}, error) {
	slicePtr := m.EmptySlice()

	sliceVal := reflect.ValueOf(slicePtr).Elem()
	if sliceVal.Kind() != reflect.Slice {
		return nil, fmt.Errorf("expected slice, got %s", sliceVal.Kind())
	}
	elemType := sliceVal.Type().Elem()

	for rows.Next() {
		elem := reflect.New(elemType)
		if err := ScanRowsToModel(elem.Interface().(Model), rows); err != nil {
			return nil, err
		}
		sliceVal.Set(reflect.Append(sliceVal, elem.Elem()))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slicePtr, nil
}

// GetColumnNames returns the model's column names as a slice of strings.
func GetColumnNames(m Model, excludeReadOnlyFields bool) []string {
	val := reflect.ValueOf(m)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()
	var columnNames []string

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("db")

		if excludeReadOnlyFields && field.Tag.Get("readOnly") == "true" {
			continue
		}

		columnNames = append(columnNames, tag)
	}
	return columnNames
}
