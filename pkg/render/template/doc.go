// Package template defines the seam page renderers use to execute named
// templates. The pongo subpackage provides the pongo2 implementation.
package template
