//go:build !windows

package platform

const binaryMode = 0
