// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Scopes(t *testing.T) {
	r := New()
	r.Global["output"] = "text"
	r.Global["verbose"] = 2
	r.Values["verbose"] = true
	r.Values["port"] = 8080

	assert.True(t, r.Bool("verbose"), "selected command shadows global")
	assert.Equal(t, "text", r.String("output"))
	assert.Equal(t, 8080, r.Int("port"))
	assert.Equal(t, 8080.0, r.Float("port"))
	assert.Equal(t, []string{"output", "port", "verbose"}, r.Keys())

	_, ok := r.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", r.String("missing"))
	assert.Equal(t, 0, r.Int("missing"))
}

func TestResult_Set(t *testing.T) {
	r := New()
	r.Global["output"] = "text"

	r.Set("output", "json")
	assert.Equal(t, "json", r.Global["output"])
	assert.NotContains(t, r.Values, "output")

	r.Set("host", "localhost")
	assert.Equal(t, "localhost", r.Values["host"])
}

func TestResult_Path(t *testing.T) {
	r := &Result{Module: "svc"}
	assert.Equal(t, "svc", r.Path())
	r.Submodule = "start"
	assert.Equal(t, "svc start", r.Path())
}

func TestResult_Conversions(t *testing.T) {
	r := New()
	r.Values["s"] = "12"
	r.Values["f"] = 1.5
	r.Values["n"] = nil

	assert.Equal(t, 12, r.Int("s"))
	assert.Equal(t, 1, r.Int("f"))
	assert.Equal(t, 12.0, r.Float("s"))
	assert.Equal(t, "1.5", r.String("f"))
	assert.Equal(t, "", r.String("n"))
	assert.False(t, r.Bool("s"))
}
