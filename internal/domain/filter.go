package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one of the address fields a search may filter or order on.
type Field int

const (
	FieldUnknown Field = iota
	FieldAddressID
	FieldStreet
	FieldHouseNumber
	FieldAnnex
	FieldPostalCode
	FieldCity
	FieldCountry
)

type fieldInfo struct {
	name    string
	column  string
	numeric bool
}

var fields = map[Field]fieldInfo{
	FieldAddressID:   {name: "addressid", column: "address_id", numeric: true},
	FieldStreet:      {name: "street", column: "street"},
	FieldHouseNumber: {name: "housenumber", column: "house_number", numeric: true},
	FieldAnnex:       {name: "annex", column: "annex"},
	FieldPostalCode:  {name: "postalcode", column: "postal_code"},
	FieldCity:        {name: "city", column: "city"},
	FieldCountry:     {name: "country", column: "country"},
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for f, info := range fields {
		m[info.name] = f
	}
	return m
}()

// ParseField resolves a field name case-insensitively.
func ParseField(name string) (Field, error) {
	f, ok := fieldsByName[strings.ToLower(name)]
	if !ok {
		return FieldUnknown, fmt.Errorf("%w: %q", ErrInvalidFilterField, name)
	}
	return f, nil
}

// String returns the canonical lowercase name.
func (f Field) String() string {
	info, ok := fields[f]
	if !ok {
		return "unknown"
	}
	return info.name
}

// Column returns the database column backing the field.
func (f Field) Column() string {
	return fields[f].column
}

// Numeric reports whether the field is stored as an integer.
func (f Field) Numeric() bool {
	return fields[f].numeric
}

// Filter is a resolved search: rows where Field equals Value, sorted by OrderBy.
// Value is always bound as a query parameter.
type Filter struct {
	Field   Field
	Value   any
	OrderBy Field
}

// ResolveFilter validates user supplied search parameters against the field
// allow-list. column and order are required; comparator may be empty.
func ResolveFilter(column, comparator, order string) (Filter, error) {
	if column == "" {
		return Filter{}, fmt.Errorf("%w: column", ErrMissingParameter)
	}
	if order == "" {
		return Filter{}, fmt.Errorf("%w: order", ErrMissingParameter)
	}

	field, err := ParseField(column)
	if err != nil {
		return Filter{}, err
	}
	orderBy, err := ParseField(order)
	if err != nil {
		return Filter{}, err
	}

	var value any = comparator
	if field.Numeric() {
		n, err := strconv.ParseInt(comparator, 10, 64)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %s expects an integer", ErrInvalidFilterValue, field)
		}
		value = n
	}

	return Filter{Field: field, Value: value, OrderBy: orderBy}, nil
}
