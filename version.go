// Package wren holds build metadata shared by the wren command and its packages.
package wren

// Version is the current wren release
const Version = "0.1.0"
