/*
Package catalog builds the ordered step list of the tour.

A Catalog holds the fixed steps of the annotation interface and, per annotation
mode, the wording of the four mode-dependent steps (add, change, unsure and
remove). Default returns the built-in catalog; Load reads a YAML override.
*/
package catalog
