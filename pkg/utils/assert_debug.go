//go:build xoxodebug

package utils

const debugAssertions = true
