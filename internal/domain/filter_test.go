package domain

import (
	"errors"
	"testing"
)

func TestResolveFilterCaseInsensitive(t *testing.T) {
	f, err := ResolveFilter("AddressId", "7", "City")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if f.Field != FieldAddressID {
		t.Fatalf("expected field addressid got %s", f.Field)
	}
	if f.OrderBy != FieldCity {
		t.Fatalf("expected order city got %s", f.OrderBy)
	}
	if f.Value != int64(7) {
		t.Fatalf("expected bound value 7 got %v", f.Value)
	}
}

func TestResolveFilterUnknownField(t *testing.T) {
	_, err := ResolveFilter("bogusField", "x", "city")
	if !errors.Is(err, ErrInvalidFilterField) {
		t.Fatalf("expected ErrInvalidFilterField got %v", err)
	}

	_, err = ResolveFilter("city", "x", "bogusField")
	if !errors.Is(err, ErrInvalidFilterField) {
		t.Fatalf("expected ErrInvalidFilterField for order got %v", err)
	}
}

func TestResolveFilterRejectsPaddedNames(t *testing.T) {
	if _, err := ParseField(" city "); !errors.Is(err, ErrInvalidFilterField) {
		t.Fatalf("expected ErrInvalidFilterField for padded name got %v", err)
	}
	if _, err := ResolveFilter("addressid", " 7", "city"); !errors.Is(err, ErrInvalidFilterValue) {
		t.Fatalf("expected ErrInvalidFilterValue for padded number got %v", err)
	}
}

func TestResolveFilterMissing(t *testing.T) {
	_, err := ResolveFilter("", "x", "city")
	if !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter got %v", err)
	}

	_, err = ResolveFilter("city", "x", "")
	if !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter got %v", err)
	}
}

func TestResolveFilterNumericValue(t *testing.T) {
	_, err := ResolveFilter("houseNumber", "12' OR '1'='1", "street")
	if !errors.Is(err, ErrInvalidFilterValue) {
		t.Fatalf("expected ErrInvalidFilterValue got %v", err)
	}
}

func TestResolveFilterKeepsComparatorVerbatim(t *testing.T) {
	comparator := "x' OR '1'='1"
	f, err := ResolveFilter("STREET", comparator, "country")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if f.Value != comparator {
		t.Fatalf("expected comparator to be carried as value, got %v", f.Value)
	}
	if f.Field.Column() != "street" || f.OrderBy.Column() != "country" {
		t.Fatalf("unexpected columns %s/%s", f.Field.Column(), f.OrderBy.Column())
	}
}

func TestFieldRoundTrip(t *testing.T) {
	for f := FieldAddressID; f <= FieldCountry; f++ {
		parsed, err := ParseField(f.String())
		if err != nil {
			t.Fatalf("parse %s: %v", f, err)
		}
		if parsed != f {
			t.Fatalf("expected %s got %s", f, parsed)
		}
		if parsed.String() != f.String() {
			t.Fatalf("round trip changed name %s -> %s", f, parsed)
		}
	}
}

func TestFieldUnknownHasNoColumn(t *testing.T) {
	if FieldUnknown.Column() != "" {
		t.Fatalf("unknown field must not map to a column")
	}
	if _, err := ParseField("unknown"); !errors.Is(err, ErrInvalidFilterField) {
		t.Fatalf("zero value name must not resolve")
	}
}
