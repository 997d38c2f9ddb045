package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDefaults(t *testing.T) {
	ee := Newf("something failed").Build()

	assert.Equal(t, ComponentUnknown, ee.Component)
	assert.Equal(t, CategoryGeneric, ee.Category)
	assert.Equal(t, "something failed", ee.Error())
	assert.Nil(t, ee.GetContext())
}

func TestBuilderMetadata(t *testing.T) {
	base := NewStd("convergence failure")
	ee := New(base).
		Component("gab").
		Category(CategoryFitConvergence).
		Context("samples", 12).
		Build()

	assert.Equal(t, "gab", ee.Component)
	assert.Equal(t, CategoryFitConvergence, ee.Category)
	assert.Equal(t, 12, ee.GetContext()["samples"])

	// Unwrap reaches the original error.
	assert.True(t, Is(ee, base))
}

func TestContextCopyIsIsolated(t *testing.T) {
	ee := Newf("x").Context("k", "v").Build()

	ctx := ee.GetContext()
	ctx["k"] = "mutated"

	assert.Equal(t, "v", ee.GetContext()["k"])
}

func TestCategoryChecks(t *testing.T) {
	notFound := Newf("no such artifact").Category(CategoryNotFound).Build()
	require.True(t, IsNotFound(notFound))
	assert.False(t, IsFitConvergence(notFound))

	fit := Newf("did not converge").Category(CategoryFitConvergence).Build()
	assert.True(t, IsFitConvergence(fit))
	assert.True(t, IsCategory(fit, CategoryFitConvergence))

	// Plain errors carry no category.
	assert.False(t, IsNotFound(NewStd("plain")))
}
