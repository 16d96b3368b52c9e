// Package migrations holds the schema history. Each file registers its
// migrations from init(); importing the package for side effects is enough
// to make them available to the runner.
package migrations
