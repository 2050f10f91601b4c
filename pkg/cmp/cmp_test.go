package cmp_test

import (
	"testing"

	"github.com/flowkit/flowkit/pkg/cmp"
)

func TestSliceEq(t *testing.T) {
	for name, testcase := range map[string]struct {
		a, b []int
		then bool
	}{
		"when slices are equal, it returns true": {
			a: []int{1, 2, 3}, b: []int{1, 2, 3}, then: true,
		},
		"when slices differ in order, it returns false": {
			a: []int{1, 2, 3}, b: []int{1, 3, 2}, then: false,
		},
		"when slices differ in length, it returns false": {
			a: []int{1, 2, 3}, b: []int{1, 2}, then: false,
		},
		"when both slices are empty, it returns true": {
			a: []int{}, b: nil, then: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := cmp.SliceEq(testcase.a, testcase.b); actual != testcase.then {
				t.Errorf("wrong result: (actual, expected) = (%v, %v)", actual, testcase.then)
			}
		})
	}
}

func TestMapEq(t *testing.T) {
	for name, testcase := range map[string]struct {
		a, b map[string]string
		then bool
	}{
		"when maps are equal, it returns true": {
			a:    map[string]string{"x": "1", "y": "2"},
			b:    map[string]string{"y": "2", "x": "1"},
			then: true,
		},
		"when values differ, it returns false": {
			a:    map[string]string{"x": "1"},
			b:    map[string]string{"x": "2"},
			then: false,
		},
		"when keys differ, it returns false": {
			a:    map[string]string{"x": "1"},
			b:    map[string]string{"y": "1"},
			then: false,
		},
		"when both are empty, it returns true": {
			a: map[string]string{}, b: nil, then: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := cmp.MapEq(testcase.a, testcase.b); actual != testcase.then {
				t.Errorf("wrong result: (actual, expected) = (%v, %v)", actual, testcase.then)
			}
		})
	}
}
