//go:build !unix

package jsonbuild

var platformRules []Rule
