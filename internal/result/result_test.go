package result

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Ok(t *testing.T) {
	r := Ok(42)

	assert.True(t, r.IsOk())
	assert.Nil(t, r.Err())
	assert.Equal(t, 42, r.Value())

	v, err := r.Unwrap()
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestResult_Fail(t *testing.T) {
	r := Fail[string](NotFound("User not found."))

	assert.False(t, r.IsOk())
	assert.Equal(t, CodeNotFound, r.Err().Code)
	assert.Equal(t, "User not found.", r.Err().Message)
	assert.Panics(t, func() { _ = r.Value() })

	v, err := r.Unwrap()
	assert.Error(t, err)
	assert.Empty(t, v)

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, de.Code)
}

func TestResult_FailNil(t *testing.T) {
	r := Fail[int](nil)

	assert.False(t, r.IsOk())
	assert.Equal(t, CodeInternal, r.Err().Code)
}

func TestMatch(t *testing.T) {
	describe := func(r Result[int]) string {
		return Match(r,
			func(v int) string { return fmt.Sprintf("ok %d", v) },
			func(e *DomainError) string { return "err " + e.Code.String() },
		)
	}

	assert.Equal(t, "ok 7", describe(Ok(7)))
	assert.Equal(t, "err CONFLICT", describe(Fail[int](Conflict("taken"))))
}

func TestCode_String(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeNotFound, "NOT_FOUND"},
		{CodeConflict, "CONFLICT"},
		{CodeInternal, "INTERNAL"},
		{Code(418), "CODE(418)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.String())
		})
	}
}

func TestAsDomainError_Wrapped(t *testing.T) {
	err := fmt.Errorf("register: %w", Internal("Error registering user."))

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, "INTERNAL: Error registering user.", de.Error())

	_, ok = AsDomainError(errors.New("plain"))
	assert.False(t, ok)
}
