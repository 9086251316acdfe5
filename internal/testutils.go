package internal

import (
	"errors"
	"reflect"
	"testing"
)

// AssertNoError checks for the non-existence of an error
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
}

// AssertErrorIs checks that err matches the wanted sentinel
func AssertErrorIs(t *testing.T, err, want error) {
	t.Helper()

	if err == nil {
		t.Fatalf("Expected %q, but got nil", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("Got error %q, want %q", err, want)
	}
}

// AssertEqual checks that the values are equal
func AssertEqual(t *testing.T, got, want interface{}) {
	t.Helper()

	if got != want {
		t.Errorf("\nGot: %+v\nwant: %+v", got, want)
	}
}

// AssertDeepEqual checks that the values are equal
func AssertDeepEqual(t *testing.T, got, want interface{}) {
	t.Helper()

	if !reflect.DeepEqual(got, want) {
		t.Errorf("\nGot: %+v\nwant: %+v", got, want)
	}
}

// AssertTrue checks that the value is true
func AssertTrue(t *testing.T, got bool) {
	t.Helper()

	if got != true {
		t.Error("Expected to be true, but it wasn't")
	}
}
